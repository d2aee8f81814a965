// Package detect derives mirror events from the difference between a
// stored player record and an incoming update. The functions never
// mutate their inputs and must run before the update is applied, so
// comparisons always see the previous state.
package detect

import (
	"fmt"

	"github.com/highwayhustle/backend/internal/model"
)

// Economy reports a transaction event when the update changes the
// player's currency balance. The event carries the signed delta: a
// rise is an earning with a positive delta, a fall is a spend with a
// negative one.
func Economy(prev *model.Player, update *model.EconomyUpdate) []model.MirrorEvent {
	if update == nil || update.Currency == nil {
		return nil
	}

	delta := *update.Currency - prev.Economy.Currency
	if delta == 0 {
		return nil
	}

	event := model.MirrorEvent{
		Category: model.MirrorEconomy,
		Delta:    delta,
	}
	if delta > 0 {
		event.Kind = model.CurrencyEarning
		event.Description = fmt.Sprintf("Currency earned: %d", delta)
	} else {
		event.Kind = model.CurrencySpend
		event.Description = fmt.Sprintf("Currency spent: %d", -delta)
	}

	return []model.MirrorEvent{event}
}

// Scores reports a single score event when any of the four game mode
// bests strictly increases. The event carries the full post-update
// score set; which mode is actually submitted downstream is a ledger
// concern, not a detection one.
func Scores(prev *model.Player, update *model.ScoreUpdate) []model.MirrorEvent {
	if update == nil {
		return nil
	}

	scratch := *prev
	update.Apply(&scratch)
	next := scratch.BestScores

	improved := next.OneWay > prev.BestScores.OneWay ||
		next.TwoWay > prev.BestScores.TwoWay ||
		next.TimeAttack > prev.BestScores.TimeAttack ||
		next.Bomb > prev.BestScores.Bomb
	if !improved {
		return nil
	}

	return []model.MirrorEvent{{
		Category: model.MirrorScore,
		Scores:   next,
	}}
}

// Vehicle reports a switch event when the selected vehicle index
// changes. Ownership changes alone do not produce events.
func Vehicle(prev *model.Player, update *model.VehicleUpdate) []model.MirrorEvent {
	if update == nil || update.SelectedIndex == nil {
		return nil
	}

	to := *update.SelectedIndex
	if to == prev.Vehicles.SelectedIndex {
		return nil
	}

	return []model.MirrorEvent{{
		Category:  model.MirrorVehicle,
		FromIndex: prev.Vehicles.SelectedIndex,
		ToIndex:   to,
	}}
}

// Campaign reports one mission event per flag that transitions from
// unset-or-false to true. Flags that were already true, or that the
// update sets to false, do not fire.
func Campaign(prev *model.Player, update *model.CampaignUpdate) []model.MirrorEvent {
	if update == nil || len(update.Flags) == 0 {
		return nil
	}

	var events []model.MirrorEvent
	for flag, achieved := range update.Flags {
		if !achieved || prev.Campaign.Achieved(flag) {
			continue
		}
		events = append(events, model.MirrorEvent{
			Category:    model.MirrorMission,
			Achievement: flag,
		})
	}

	return events
}

// Session builds the session event fired by a full profile update. It
// reflects the post-update state of the record.
func Session(player *model.Player, sessionType string) model.MirrorEvent {
	return model.MirrorEvent{
		Category:    model.MirrorSession,
		SessionType: sessionType,
		Currency:    player.Economy.Currency,
		Scores:      player.BestScores,
		PlayTime:    player.Economy.TotalPlayedTime,
	}
}
