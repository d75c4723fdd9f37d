package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Persisted settings keys
const (
	SettingEnableDeposit           = "enable_deposit"
	SettingDepositPerPerson        = "deposit_per_person"
	SettingFlexibleCapacity        = "flexible_capacity"
	SettingRequireManualApproval   = "require_manual_approval"
	SettingManualValidationMessage = "manual_validation_message"
	SettingMinNoticeMinutes        = "min_notice_minutes"
	SettingClosedWeekdays          = "closed_weekdays"
)

// KnownSettingKeys lists every key accepted on write
var KnownSettingKeys = []string{
	SettingEnableDeposit,
	SettingDepositPerPerson,
	SettingFlexibleCapacity,
	SettingRequireManualApproval,
	SettingManualValidationMessage,
	SettingMinNoticeMinutes,
	SettingClosedWeekdays,
}

// Settings defaults
const (
	DefaultManualValidationMessage = "Tu reserva está pendiente de confirmación por el restaurante."
	DefaultMinNoticeMinutes        = 1440
	MaxMinNoticeMinutes            = 60 * 24 * 30
)

// DefaultDepositPerPerson is the deposit charged per guest
var DefaultDepositPerPerson = decimal.NewFromInt(5)

// Settings is the typed per-tenant policy
type Settings struct {
	DepositEnabled          bool
	DepositPerPerson        decimal.Decimal
	FlexibleCapacity        bool
	RequireManualApproval   bool
	ManualValidationMessage string
	MinNoticeMinutes        int
	ClosedWeekdays          []time.Weekday
}

// DefaultSettings returns the policy used when nothing is stored
func DefaultSettings() Settings {
	return Settings{
		DepositEnabled:          true,
		DepositPerPerson:        DefaultDepositPerPerson,
		ManualValidationMessage: DefaultManualValidationMessage,
		MinNoticeMinutes:        DefaultMinNoticeMinutes,
	}
}

// SettingsIssue describes a stored value that could not be parsed
type SettingsIssue struct {
	Key   string
	Value string
	Err   error
}

// ParseSettings converts stored key/value pairs into Settings.
// Malformed values keep their default and are reported as issues.
func ParseSettings(raw map[string]string) (Settings, []SettingsIssue) {
	s := DefaultSettings()
	var issues []SettingsIssue

	for key, value := range raw {
		if err := s.apply(key, value); err != nil {
			issues = append(issues, SettingsIssue{Key: key, Value: value, Err: err})
		}
	}

	sort.Slice(issues, func(i, j int) bool { return issues[i].Key < issues[j].Key })
	return s, issues
}

// ApplyPatch validates and applies updates on top of s.
// Unknown keys and invalid values fail the whole patch.
func (s Settings) ApplyPatch(patch map[string]string) (Settings, error) {
	next := s
	next.ClosedWeekdays = append([]time.Weekday(nil), s.ClosedWeekdays...)

	for key, value := range patch {
		if !isKnownSettingKey(key) {
			return s, fmt.Errorf("unknown setting %q", key)
		}
		if key == SettingEnableDeposit {
			if _, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
				return s, fmt.Errorf("setting %q: %w", key, err)
			}
		}
		if err := next.apply(key, value); err != nil {
			return s, fmt.Errorf("setting %q: %w", key, err)
		}
	}
	return next, nil
}

func (s *Settings) apply(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case SettingEnableDeposit:
		// any value but "false" keeps deposits on
		s.DepositEnabled = value != "false"
	case SettingDepositPerPerson:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return err
		}
		if d.IsNegative() {
			return fmt.Errorf("must not be negative")
		}
		s.DepositPerPerson = d
	case SettingFlexibleCapacity:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		s.FlexibleCapacity = b
	case SettingRequireManualApproval:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		s.RequireManualApproval = b
	case SettingManualValidationMessage:
		if value == "" {
			s.ManualValidationMessage = DefaultManualValidationMessage
		} else {
			s.ManualValidationMessage = value
		}
	case SettingMinNoticeMinutes:
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < 0 || n > MaxMinNoticeMinutes {
			return fmt.Errorf("must be between 0 and %d", MaxMinNoticeMinutes)
		}
		s.MinNoticeMinutes = n
	case SettingClosedWeekdays:
		days, err := parseWeekdays(value)
		if err != nil {
			return err
		}
		s.ClosedWeekdays = days
	default:
		// unknown stored keys are ignored
	}
	return nil
}

// ToMap serializes settings into the stored key/value form
func (s Settings) ToMap() map[string]string {
	days := make([]string, 0, len(s.ClosedWeekdays))
	for _, d := range s.ClosedWeekdays {
		days = append(days, strconv.Itoa(int(d)))
	}

	return map[string]string{
		SettingEnableDeposit:           strconv.FormatBool(s.DepositEnabled),
		SettingDepositPerPerson:        s.DepositPerPerson.String(),
		SettingFlexibleCapacity:        strconv.FormatBool(s.FlexibleCapacity),
		SettingRequireManualApproval:   strconv.FormatBool(s.RequireManualApproval),
		SettingManualValidationMessage: s.ManualValidationMessage,
		SettingMinNoticeMinutes:        strconv.Itoa(s.MinNoticeMinutes),
		SettingClosedWeekdays:          strings.Join(days, ","),
	}
}

// IsWeekdayClosed reports whether the weekday of date is a recurring closure
func (s Settings) IsWeekdayClosed(date time.Time) bool {
	wd := date.Weekday()
	for _, d := range s.ClosedWeekdays {
		if d == wd {
			return true
		}
	}
	return false
}

// DepositFor returns partySize × DepositPerPerson
func (s Settings) DepositFor(partySize int) decimal.Decimal {
	return s.DepositPerPerson.Mul(decimal.NewFromInt(int64(partySize)))
}

// RequiresPayment reports whether a booking with this deposit waits for payment
func (s Settings) RequiresPayment(deposit decimal.Decimal) bool {
	return s.DepositEnabled && deposit.IsPositive()
}

func isKnownSettingKey(key string) bool {
	for _, k := range KnownSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

func parseBool(value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}

func parseWeekdays(value string) ([]time.Weekday, error) {
	if value == "" {
		return nil, nil
	}

	seen := make(map[time.Weekday]bool)
	days := make([]time.Weekday, 0, 7)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("weekday %q: %w", part, err)
		}
		if n < 0 || n > 6 {
			return nil, fmt.Errorf("weekday %d out of range 0..6", n)
		}
		wd := time.Weekday(n)
		if !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days, nil
}
