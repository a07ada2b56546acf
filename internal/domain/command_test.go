package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"EQUIP", ActionEquip},
		{"equip", ActionEquip},
		{"Equip", ActionEquip},
		{"ACTIVATE_SKILL", ActionActivateSkill},
		{"UPGRADE_STAT", ActionUpgradeStat},
		{"SPAWN_WAVE", ActionSpawnWave},
		{"UNKNOWN_ACTION", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionEquip, "EQUIP"},
		{ActionSellItem, "SELL_ITEM"},
		{ActionToggleAuto, "TOGGLE_AUTO"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

// Round-trip: каждое известное действие переживает String -> Parse.
func TestActionType_RoundTrip(t *testing.T) {
	for a := ActionState; a <= ActionCheat; a++ {
		if got := ParseAction(a.String()); got != a {
			t.Errorf("ParseAction(%q) = %v, want %v", a.String(), got, a)
		}
	}
}
