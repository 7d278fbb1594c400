package rsvp

import "go.uber.org/zap/zapcore"

type guestSummaries []GuestRecord

func (gs guestSummaries) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for i := range gs {
		g := gs[i]
		if err := enc.AppendObject(zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
			oe.AddString("name", g.Name)
			oe.AddBool("attending", g.Attending)
			oe.AddString("dietary", g.Dietary)
			return nil
		})); err != nil {
			return err
		}
	}
	return nil
}
