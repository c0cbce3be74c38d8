package marketplace

import "github.com/sudo-init-do/solosphere/internal/apperr"

// Actor is the role a caller plays on a particular bid.
type Actor int

const (
	ActorNone Actor = iota
	// ActorOwner owns the job the bid was placed on.
	ActorOwner
	// ActorBidder placed the bid.
	ActorBidder
)

func (a Actor) String() string {
	switch a {
	case ActorOwner:
		return "owner"
	case ActorBidder:
		return "bidder"
	default:
		return "none"
	}
}

// ActorFor resolves the caller's role on bid. Emails are compared after normalization.
func ActorFor(bid Bid, caller string) Actor {
	caller = NormalizeEmail(caller)
	switch {
	case caller == "":
		return ActorNone
	case caller == NormalizeEmail(bid.Buyer):
		return ActorOwner
	case caller == NormalizeEmail(bid.Email):
		return ActorBidder
	default:
		return ActorNone
	}
}

// CheckTransition returns nil when actor may move a bid from -> to.
//
// Owners may switch between any two distinct statuses except into Completed.
// Bidders may only move In Progress to Completed. Completed and Rejected are terminal.
func CheckTransition(actor Actor, from, to Status) error {
	if actor != ActorOwner && actor != ActorBidder {
		return apperr.Forbidden("only the job owner or the bidder can change this bid")
	}
	if from == to {
		return apperr.InvalidTransition("bid is already %s", from)
	}
	if from.Terminal() {
		return apperr.InvalidTransition("bid is %s and can no longer change", from)
	}
	switch actor {
	case ActorOwner:
		if to == StatusCompleted {
			return apperr.InvalidTransition("only the bidder can mark a bid %s", StatusCompleted)
		}
		return nil
	case ActorBidder:
		if from == StatusInProgress && to == StatusCompleted {
			return nil
		}
		return apperr.InvalidTransition("bidders can only move %s bids to %s", StatusInProgress, StatusCompleted)
	}
	return nil
}

// CheckTermsEditable returns nil when the bid's price, comment and deadline may change.
func CheckTermsEditable(bid Bid) error {
	if bid.Status.Terminal() {
		return apperr.InvalidTransition("bid is %s and its terms can no longer change", bid.Status)
	}
	return nil
}
