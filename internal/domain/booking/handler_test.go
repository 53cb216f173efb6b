package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func newTestHandler(repo *fakeRepo, st *fakeStudios) *Handler {
	return NewHandler(NewService(repo, st, testGrid(), nil, nil, nil))
}

func TestAvailabilityHandler(t *testing.T) {
	st := activeStudio()
	h := newTestHandler(&fakeRepo{active: []*Booking{{TimeSlot: "10:00", DurationHours: 2}}}, &fakeStudios{studio: st})

	req := httptest.NewRequest(http.MethodGet,
		"/availability?studio_id="+st.ID.String()+"&date=2026-09-10&duration_hours=2", nil)
	rr := httptest.NewRecorder()

	h.Availability(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var out struct {
		Success bool                 `json:"success"`
		Data    AvailabilityResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Success {
		t.Error("expected success envelope")
	}
	if out.Data.StepMinutes != 60 || len(out.Data.Slots) != 15 {
		t.Errorf("grid = step %d, %d slots", out.Data.StepMinutes, len(out.Data.Slots))
	}
}

func TestAvailabilityHandlerRejectsBadInput(t *testing.T) {
	h := newTestHandler(&fakeRepo{}, &fakeStudios{studio: activeStudio()})

	tests := []struct {
		name  string
		query string
	}{
		{"missing studio", "?date=2026-09-10"},
		{"bad date", "?studio_id=" + uuid.NewString() + "&date=10-09-2026"},
		{"sub-minimum duration", "?studio_id=" + uuid.NewString() + "&date=2026-09-10&duration_hours=0.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Availability(rr, httptest.NewRequest(http.MethodGet, "/availability"+tt.query, nil))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestCreateHandlerConflictReturns409(t *testing.T) {
	st := activeStudio()
	h := newTestHandler(&fakeRepo{active: []*Booking{{TimeSlot: "10:00", DurationHours: 2}}}, &fakeStudios{studio: st})

	body, _ := json.Marshal(createRequest(st.ID, "11:00", 1))
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateHandlerValidation(t *testing.T) {
	st := activeStudio()
	h := newTestHandler(&fakeRepo{}, &fakeStudios{studio: st})

	bad := createRequest(st.ID, "10:61", 1) // not a clock time
	body, _ := json.Marshal(bad)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	var out struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error code = %s, want VALIDATION_ERROR", out.Error.Code)
	}
	if _, ok := out.Error.Fields["time_slot"]; !ok {
		t.Errorf("expected time_slot validation error, got %+v", out.Error)
	}
}

func TestCreateHandlerGridMisfitReturns400(t *testing.T) {
	st := activeStudio()
	h := newTestHandler(&fakeRepo{}, &fakeStudios{studio: st})

	body, _ := json.Marshal(createRequest(st.ID, "22:00", 2))
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}
