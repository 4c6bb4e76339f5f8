package job

import (
	"errors"
	"testing"
	"time"
)

func TestApplyTransition(t *testing.T) {
	fixedTime := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		op               Operation
		state            JobState
		wantErr          bool
		wantTo           Status
		wantStartTime    bool
		wantCheckInTime  bool
		wantCompleteTime bool
		wantClearClerk   bool
	}{
		{
			name:   "assign from created",
			op:     OpAssign,
			state:  JobState{Status: StatusCreated},
			wantTo: StatusAssigned,
		},
		{
			name:    "assign from assigned is not idempotent",
			op:      OpAssign,
			state:   JobState{Status: StatusAssigned},
			wantErr: true,
		},
		{
			name:    "assign from completed",
			op:      OpAssign,
			state:   JobState{Status: StatusCompleted},
			wantErr: true,
		},
		{
			name:          "start from assigned sets start time",
			op:            OpStart,
			state:         JobState{Status: StatusAssigned},
			wantTo:        StatusInProgress,
			wantStartTime: true,
		},
		{
			name:    "start from in_progress is not idempotent",
			op:      OpStart,
			state:   JobState{Status: StatusInProgress, StartTimeSet: true},
			wantErr: true,
		},
		{
			name:    "start from created",
			op:      OpStart,
			state:   JobState{Status: StatusCreated},
			wantErr: true,
		},
		{
			name:            "check in from in_progress sets check-in time",
			op:              OpCheckIn,
			state:           JobState{Status: StatusInProgress, StartTimeSet: true},
			wantTo:          StatusCheckedIn,
			wantCheckInTime: true,
		},
		{
			name:    "check in without recorded start time",
			op:      OpCheckIn,
			state:   JobState{Status: StatusInProgress},
			wantErr: true,
		},
		{
			name:    "check in from assigned",
			op:      OpCheckIn,
			state:   JobState{Status: StatusAssigned},
			wantErr: true,
		},
		{
			name:             "complete from checked_in sets complete time",
			op:               OpComplete,
			state:            JobState{Status: StatusCheckedIn, StartTimeSet: true},
			wantTo:           StatusCompleted,
			wantCompleteTime: true,
		},
		{
			name:    "complete directly from assigned",
			op:      OpComplete,
			state:   JobState{Status: StatusAssigned},
			wantErr: true,
		},
		{
			name:   "cancel from created",
			op:     OpCancel,
			state:  JobState{Status: StatusCreated},
			wantTo: StatusCancelled,
		},
		{
			name:   "cancel from assigned",
			op:     OpCancel,
			state:  JobState{Status: StatusAssigned},
			wantTo: StatusCancelled,
		},
		{
			name:   "cancel from in_progress",
			op:     OpCancel,
			state:  JobState{Status: StatusInProgress, StartTimeSet: true},
			wantTo: StatusCancelled,
		},
		{
			name:    "cancel from checked_in is always rejected",
			op:      OpCancel,
			state:   JobState{Status: StatusCheckedIn, StartTimeSet: true},
			wantErr: true,
		},
		{
			name:    "cancel from completed",
			op:      OpCancel,
			state:   JobState{Status: StatusCompleted, StartTimeSet: true},
			wantErr: true,
		},
		{
			name:    "cancel from cancelled",
			op:      OpCancel,
			state:   JobState{Status: StatusCancelled},
			wantErr: true,
		},
		{
			name:           "reject from assigned clears clerk",
			op:             OpReject,
			state:          JobState{Status: StatusAssigned},
			wantTo:         StatusCreated,
			wantClearClerk: true,
		},
		{
			name:    "reject from in_progress",
			op:      OpReject,
			state:   JobState{Status: StatusInProgress, StartTimeSet: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ApplyTransition(tt.op, tt.state, fixedTime)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ApplyTransition(%s, %q) error = nil, want ErrInvalidTransition", tt.op, tt.state.Status)
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("ApplyTransition(%s, %q) error = %v, want ErrInvalidTransition", tt.op, tt.state.Status, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ApplyTransition(%s, %q) unexpected error: %v", tt.op, tt.state.Status, err)
			}
			if result.FromStatus != tt.state.Status {
				t.Errorf("FromStatus = %q, want %q", result.FromStatus, tt.state.Status)
			}
			if result.ToStatus != tt.wantTo {
				t.Errorf("ToStatus = %q, want %q", result.ToStatus, tt.wantTo)
			}

			checkTimestamp(t, "StartTime", result.StartTime, tt.wantStartTime, fixedTime)
			checkTimestamp(t, "CheckInTime", result.CheckInTime, tt.wantCheckInTime, fixedTime)
			checkTimestamp(t, "CompleteTime", result.CompleteTime, tt.wantCompleteTime, fixedTime)

			if result.ClearAssignedClerk != tt.wantClearClerk {
				t.Errorf("ClearAssignedClerk = %v, want %v", result.ClearAssignedClerk, tt.wantClearClerk)
			}
		})
	}
}

func checkTimestamp(t *testing.T, name string, got *time.Time, want bool, fixedTime time.Time) {
	t.Helper()
	if want {
		if got == nil {
			t.Errorf("%s = nil, want %v", name, fixedTime)
		} else if !got.Equal(fixedTime) {
			t.Errorf("%s = %v, want %v", name, got, fixedTime)
		}
	} else if got != nil {
		t.Errorf("%s = %v, want nil", name, got)
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(); got != StatusCreated {
		t.Errorf("InitialStatus() = %q, want %q", got, StatusCreated)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusCreated:    false,
		StatusAssigned:   false,
		StatusInProgress: false,
		StatusCheckedIn:  false,
		StatusCompleted:  true,
		StatusCancelled:  true,
	}
	for status, want := range terminal {
		if got := IsTerminal(status); got != want {
			t.Errorf("IsTerminal(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestRequiresAssignedClerk(t *testing.T) {
	want := map[Status]bool{
		StatusCreated:    false,
		StatusAssigned:   true,
		StatusInProgress: true,
		StatusCheckedIn:  true,
		StatusCompleted:  true,
		StatusCancelled:  false,
	}
	for status, expect := range want {
		if got := RequiresAssignedClerk(status); got != expect {
			t.Errorf("RequiresAssignedClerk(%q) = %v, want %v", status, got, expect)
		}
	}
}
