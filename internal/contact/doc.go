// Package contact implements the contact form: three text fields and a
// submission lifecycle that posts them to a form relay.
//
// The lifecycle is a small state machine:
//
//	Idle --Submit--> Sending --relay ok--> Success --reset delay--> Idle
//	                         \--relay err-> Error   --reset delay--> Idle
//
// Submit is accepted only from Idle and only with a non-empty email and
// message; anything else is rejected with an error and leaves the state
// untouched. A successful submission clears the fields; a failed one keeps
// them for a retry. The automatic return to Idle is driven by a Clock so
// tests can fake time, and pending resets are cancelled by Close.
package contact
