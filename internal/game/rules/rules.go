// Package rules holds the tunable constants of a game.
//
// Defaults reproduce the standard game. A TOML file may override any subset
// of them; keys left out keep their default.
package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// MaxSeats is the number of pieces, and so of competitors, a game can seat.
const MaxSeats = 8

// Rules is the full set of house rules for one game.
type Rules struct {
	StartingWealth   int `toml:"starting_wealth"`
	StartingTreasury int `toml:"starting_treasury"`
	MinPlayers       int `toml:"min_players"`
	MaxPlayers       int `toml:"max_players"`

	TravelTax        int `toml:"travel_tax"`
	PilferAmount     int `toml:"pilfer_amount"`
	PilferSuccessMin int `toml:"pilfer_success_min"`

	RehabilitationFee     int `toml:"rehabilitation_fee"`
	GulagTimeoutDays      int `toml:"gulag_timeout_days"`
	SentenceExtensionDays int `toml:"sentence_extension_days"`
	VoucherRounds         int `toml:"voucher_rounds"`

	DebtGraceRounds         int `toml:"debt_grace_rounds"`
	MaxCollectivization     int `toml:"max_collectivization"`
	MortgageInterestPercent int `toml:"mortgage_interest_percent"`

	InformantBonus        int `toml:"informant_bonus"`
	DenouncementsPerRound int `toml:"denouncements_per_round"`
	CommissarWitnesses    int `toml:"commissar_witnesses"`

	PlanSuccessBonus      int `toml:"plan_success_bonus"`
	BreadlineContribution int `toml:"breadline_contribution"`
	TestReward            int `toml:"test_reward"`
	TestPenalty           int `toml:"test_penalty"`
	SickleRequisition     int `toml:"sickle_requisition"`
}

// Default returns the standard rules.
func Default() Rules {
	return Rules{
		StartingWealth:          1500,
		StartingTreasury:        5000,
		MinPlayers:              2,
		MaxPlayers:              8,
		TravelTax:               200,
		PilferAmount:            200,
		PilferSuccessMin:        4,
		RehabilitationFee:       500,
		GulagTimeoutDays:        10,
		SentenceExtensionDays:   1,
		VoucherRounds:           3,
		DebtGraceRounds:         1,
		MaxCollectivization:     5,
		MortgageInterestPercent: 10,
		InformantBonus:          100,
		DenouncementsPerRound:   1,
		CommissarWitnesses:      2,
		PlanSuccessBonus:        200,
		BreadlineContribution:   25,
		TestReward:              100,
		TestPenalty:             50,
		SickleRequisition:       50,
	}
}

// Parse decodes TOML overrides on top of the defaults.
func Parse(data string) (Rules, error) {
	r := Default()
	meta, err := toml.Decode(data, &r)
	if err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Rules{}, fmt.Errorf("unknown rules keys: %s", strings.Join(keys, ", "))
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// LoadFile reads rule overrides from a TOML file. An empty path returns the
// defaults.
func LoadFile(path string) (Rules, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	r, err := Parse(string(data))
	if err != nil {
		return Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return r, nil
}

// Validate rejects rule sets the engine cannot run.
func (r Rules) Validate() error {
	nonNegative := map[string]int{
		"starting_wealth":           r.StartingWealth,
		"starting_treasury":         r.StartingTreasury,
		"travel_tax":                r.TravelTax,
		"pilfer_amount":             r.PilferAmount,
		"rehabilitation_fee":        r.RehabilitationFee,
		"sentence_extension_days":   r.SentenceExtensionDays,
		"debt_grace_rounds":         r.DebtGraceRounds,
		"mortgage_interest_percent": r.MortgageInterestPercent,
		"informant_bonus":           r.InformantBonus,
		"commissar_witnesses":       r.CommissarWitnesses,
		"plan_success_bonus":        r.PlanSuccessBonus,
		"breadline_contribution":    r.BreadlineContribution,
		"test_reward":               r.TestReward,
		"test_penalty":              r.TestPenalty,
		"sickle_requisition":        r.SickleRequisition,
	}
	for key, value := range nonNegative {
		if value < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", key, value)
		}
	}
	switch {
	case r.MinPlayers < 2:
		return fmt.Errorf("min_players must be at least 2, got %d", r.MinPlayers)
	case r.MaxPlayers < r.MinPlayers:
		return fmt.Errorf("max_players (%d) must be >= min_players (%d)", r.MaxPlayers, r.MinPlayers)
	case r.MaxPlayers > MaxSeats:
		return fmt.Errorf("max_players must be at most %d, got %d", MaxSeats, r.MaxPlayers)
	case r.PilferSuccessMin < 1 || r.PilferSuccessMin > 6:
		return fmt.Errorf("pilfer_success_min must be between 1 and 6, got %d", r.PilferSuccessMin)
	case r.GulagTimeoutDays < 1:
		return fmt.Errorf("gulag_timeout_days must be positive, got %d", r.GulagTimeoutDays)
	case r.VoucherRounds < 1:
		return fmt.Errorf("voucher_rounds must be positive, got %d", r.VoucherRounds)
	case r.MaxCollectivization < 1:
		return fmt.Errorf("max_collectivization must be positive, got %d", r.MaxCollectivization)
	case r.DenouncementsPerRound < 1:
		return fmt.Errorf("denouncements_per_round must be positive, got %d", r.DenouncementsPerRound)
	}
	return nil
}
