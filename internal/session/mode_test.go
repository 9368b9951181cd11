package session

import "testing"

func TestTransition(t *testing.T) {
	tests := []struct {
		from  Mode
		event Event
		to    Mode
		ok    bool
	}{
		{ModeMenu, EventStart, ModePlaying, true},
		{ModeMenu, EventPause, ModeMenu, false},
		{ModeMenu, EventRestart, ModeMenu, false},
		{ModePlaying, EventPause, ModePaused, true},
		{ModePlaying, EventDie, ModeGameOver, true},
		{ModePlaying, EventClear, ModeCleared, true},
		{ModePlaying, EventRestart, ModePlaying, true},
		{ModePlaying, EventMenu, ModeMenu, true},
		{ModePlaying, EventStart, ModePlaying, false},
		{ModePaused, EventResume, ModePlaying, true},
		{ModePaused, EventRestart, ModePlaying, true},
		{ModePaused, EventMenu, ModeMenu, true},
		{ModePaused, EventDie, ModePaused, false},
		{ModeGameOver, EventRestart, ModePlaying, true},
		{ModeGameOver, EventMenu, ModeMenu, true},
		{ModeGameOver, EventPause, ModeGameOver, false},
		{ModeCleared, EventRestart, ModePlaying, true},
		{ModeCleared, EventMenu, ModeMenu, true},
		{ModeCleared, EventDie, ModeCleared, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.event.String(), func(t *testing.T) {
			got, ok := Transition(tt.from, tt.event)
			if got != tt.to || ok != tt.ok {
				t.Errorf("Transition(%s, %s) = (%s, %v), expected (%s, %v)",
					tt.from, tt.event, got, ok, tt.to, tt.ok)
			}
		})
	}
}
