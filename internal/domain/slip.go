package domain

import "time"

// ConfidentialTitle replaces the document title on public views of confidential trackers.
const ConfidentialTitle = "CONFIDENTIAL"

// RoutingSlip is the public, read-only history of a tracker.
type RoutingSlip struct {
	SerialNumber     string
	DocumentTitle    string
	FromName         string
	DateReceived     time.Time
	IsConfidential   bool
	LCEAction        LCEAction
	LCEKeyedInAction *string
	LCEActionDate    *time.Time
	LCEReply         *LCEAction
	LCEKeyedInReply  *string
	LCEReplyDate     *time.Time
	Legs             []RoutingLeg
}

// NewRoutingSlip builds the public view of a tracker. Confidential trackers
// have their title masked and leg remarks dropped.
func NewRoutingSlip(t Tracker, legs []RoutingLeg) RoutingSlip {
	slip := RoutingSlip{
		SerialNumber:     t.SerialNumber,
		DocumentTitle:    t.DocumentTitle,
		FromName:         t.FromName,
		DateReceived:     t.DateReceived,
		IsConfidential:   t.IsConfidential,
		LCEAction:        t.LCEAction,
		LCEKeyedInAction: t.LCEKeyedInAction,
		LCEActionDate:    t.LCEActionDate,
		LCEReply:         t.LCEReply,
		LCEKeyedInReply:  t.LCEKeyedInReply,
		LCEReplyDate:     t.LCEReplyDate,
		Legs:             make([]RoutingLeg, 0, len(legs)),
	}

	for _, leg := range legs {
		if t.IsConfidential {
			leg.Remarks = nil
		}
		slip.Legs = append(slip.Legs, leg)
	}
	if t.IsConfidential {
		slip.DocumentTitle = ConfidentialTitle
	}

	return slip
}
