package attendance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"hrmsconsole/internal/domain/upsert"
	"hrmsconsole/internal/platform/apiclient"
	"hrmsconsole/internal/platform/validate"
	"hrmsconsole/internal/testutil"
)

func newService(t *testing.T) (*Service, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	client := apiclient.New(backend.URL(), time.Second, apiclient.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewService(apiclient.NewResource[Record](client, "/attendance")), backend
}

func present(id int64, in, out string) Mark {
	return Mark{EmployeeID: id, Date: "2024-05-01", Status: StatusPresent, CheckIn: in, CheckOut: out}
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	svc, backend := newService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, present(1, "09:00", "17:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Action != upsert.ActionCreated || first.Message != MsgMarked {
		t.Fatalf("unexpected outcome %+v", first)
	}

	second, err := svc.Save(ctx, present(1, "09:00", "12:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Action != upsert.ActionUpdated || second.Record.ID != first.Record.ID || second.Message != MsgUpdated {
		t.Fatalf("unexpected outcome %+v", second)
	}
	if backend.Count("attendance") != 1 {
		t.Fatalf("expected one record, got %d", backend.Count("attendance"))
	}

	var stored []Record
	if err := backend.Decode("attendance", &stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stored[0].CheckOut() != "12:00" {
		t.Fatalf("expected updated check-out, got %+v", stored[0])
	}
}

func TestSaveMatchesDateWithTimeSuffix(t *testing.T) {
	svc, backend := newService(t)
	backend.Seed("attendance", Record{ID: 7, EmployeeID: 1, Date: "2024-05-01T00:00:00", CheckInTime: "09:00:00"})

	out, err := svc.Save(context.Background(), present(1, "10:00", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Action != upsert.ActionUpdated || out.Record.ID != 7 {
		t.Fatalf("expected update of record 7, got %+v", out)
	}
}

func TestSaveAbsentDeletes(t *testing.T) {
	svc, backend := newService(t)
	backend.Seed("attendance", Record{ID: 4, EmployeeID: 2, Date: "2024-05-01", CheckInTime: "09:00:00"})
	ctx := context.Background()

	out, err := svc.Save(ctx, Mark{EmployeeID: 2, Date: "2024-05-01", Status: StatusAbsent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Action != upsert.ActionDeleted || out.Record.ID != 4 || out.Message != MsgAbsent {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if backend.Count("attendance") != 0 {
		t.Fatal("expected record removed")
	}

	again, err := svc.Save(ctx, Mark{EmployeeID: 2, Date: "2024-05-01", Status: StatusAbsent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Action != upsert.ActionNone {
		t.Fatalf("expected no-op, got %+v", again)
	}
	if backend.CountCalls(http.MethodDelete) != 1 {
		t.Fatalf("expected a single delete call")
	}
}

func TestSaveValidation(t *testing.T) {
	svc, backend := newService(t)
	ctx := context.Background()

	cases := []struct {
		mark Mark
		want string
	}{
		{present(1, "", ""), "Please select or enter check-in time"},
		{present(1, "9am", ""), "Check-in time must be HH:MM"},
		{present(1, "09:00", "5pm"), "Check-out time must be HH:MM"},
		{Mark{EmployeeID: 0, Date: "2024-05-01", Status: StatusAbsent}, ""},
		{Mark{EmployeeID: 1, Date: "05/01/2024", Status: StatusAbsent}, ""},
		{Mark{EmployeeID: 1, Date: "2024-05-01", Status: "late"}, ""},
	}
	for _, tc := range cases {
		_, err := svc.Save(ctx, tc.mark)
		if !validate.IsValidation(err) {
			t.Fatalf("%+v: expected validation error, got %v", tc.mark, err)
		}
		if tc.want != "" && err.Error() != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, err.Error())
		}
	}
	if len(backend.Calls()) != 0 {
		t.Fatal("expected no backend calls")
	}
}

func TestSaveConcurrentSameKey(t *testing.T) {
	svc, backend := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Save(ctx, present(3, "09:00", "17:00")); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if backend.Count("attendance") != 1 {
		t.Fatalf("expected one record, got %d", backend.Count("attendance"))
	}
}

func TestSaveBackendFailure(t *testing.T) {
	svc, backend := newService(t)
	backend.FailWith("attendance", http.StatusInternalServerError, "boom")

	_, err := svc.Save(context.Background(), present(1, "09:00", ""))
	if err == nil || err.Error() != "Error saving attendance: boom" {
		t.Fatalf("unexpected error %v", err)
	}
	if !apiclient.IsKind(err, apiclient.KindServer) {
		t.Fatalf("expected server error kind, got %v", err)
	}
}

func TestDeleteAndListForDate(t *testing.T) {
	svc, backend := newService(t)
	backend.Seed("attendance",
		Record{ID: 1, EmployeeID: 1, Date: "2024-05-01", CheckInTime: "09:00:00"},
		Record{ID: 2, EmployeeID: 1, Date: "2024-05-02", CheckInTime: "09:00:00"},
	)
	ctx := context.Background()

	day, err := svc.ListForDate(ctx, "2024-05-02")
	if err != nil || len(day) != 1 || day[0].ID != 2 {
		t.Fatalf("unexpected day records %+v, %v", day, err)
	}
	out, err := svc.Delete(ctx, 2)
	if err != nil || out.Message != MsgDeleted {
		t.Fatalf("unexpected delete %+v, %v", out, err)
	}
	if _, err := svc.Delete(ctx, 2); err == nil {
		t.Fatal("expected not found error")
	}
	if _, err := svc.Delete(ctx, 0); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected invalid id, got %v", err)
	}
}
