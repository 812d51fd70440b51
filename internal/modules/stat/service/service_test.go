package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/sccams/internal/entity"
	"anoa.com/sccams/internal/testutil"
)

type failingCounter struct{}

func (failingCounter) Count(ctx context.Context) (int64, error) { return 0, testutil.ErrBoom }

func TestDashboardCountsAndReversesAppointments(t *testing.T) {
	students := testutil.NewMemRepository[entity.Student]()
	students.Seed(&entity.Student{Person: entity.Person{Code: "S1"}})
	students.Seed(&entity.Student{Person: entity.Person{Code: "S2"}})
	teachers := testutil.NewMemRepository[entity.Teacher]()
	teachers.Seed(&entity.Teacher{Person: entity.Person{Code: "T1"}})
	administrators := testutil.NewMemRepository[entity.Administrator]()
	utilities := testutil.NewMemRepository[entity.Utility]()
	utilities.Seed(&entity.Utility{Person: entity.Person{Code: "U1"}})

	appointments := &testutil.MemAppointments{}
	first := appointments.Seed(&entity.Appointment{UserID: "u1"})
	second := appointments.Seed(&entity.Appointment{UserID: "u2"})
	third := appointments.Seed(&entity.Appointment{UserID: "u3"})

	svc := NewStatService(students, teachers, administrators, utilities, appointments)
	data, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if data.Students != 2 || data.Teachers != 1 || data.Administrators != 0 || data.Utilitys != 1 {
		t.Fatalf("unexpected counts %+v", data)
	}
	if data.Appointments != 3 || len(data.LatestAppointments) != 3 {
		t.Fatalf("expected 3 appointments, got %d/%d", data.Appointments, len(data.LatestAppointments))
	}
	if data.LatestAppointments[0].ID != third.ID || data.LatestAppointments[1].ID != second.ID || data.LatestAppointments[2].ID != first.ID {
		t.Fatalf("latest appointments not in reverse order")
	}
}

func TestDashboardEmpty(t *testing.T) {
	svc := NewStatService(
		testutil.NewMemRepository[entity.Student](),
		testutil.NewMemRepository[entity.Teacher](),
		testutil.NewMemRepository[entity.Administrator](),
		testutil.NewMemRepository[entity.Utility](),
		&testutil.MemAppointments{},
	)

	data, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if data.LatestAppointments == nil {
		t.Fatalf("expected an empty list, not nil")
	}
}

func TestDashboardPropagatesCountFailure(t *testing.T) {
	svc := NewStatService(
		testutil.NewMemRepository[entity.Student](),
		failingCounter{},
		testutil.NewMemRepository[entity.Administrator](),
		testutil.NewMemRepository[entity.Utility](),
		&testutil.MemAppointments{},
	)

	if _, err := svc.Dashboard(context.Background()); !errors.Is(err, testutil.ErrBoom) {
		t.Fatalf("expected count failure, got %v", err)
	}
}
