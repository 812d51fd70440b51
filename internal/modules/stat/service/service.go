package service

import (
	"context"
	"fmt"

	"anoa.com/sccams/internal/entity"
)

// Counter is satisfied by every personnel repository.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// AppointmentSource lists appointments in booking order.
type AppointmentSource interface {
	FindAll(ctx context.Context) ([]*entity.Appointment, error)
}

type DashData struct {
	Administrators     int64                 `json:"administrators"`
	Students           int64                 `json:"students"`
	Teachers           int64                 `json:"teachers"`
	Utilitys           int64                 `json:"utilitys"`
	Appointments       int64                 `json:"appointments"`
	LatestAppointments []*entity.Appointment `json:"latestAppointments"`
}

type StatService interface {
	Dashboard(ctx context.Context) (*DashData, error)
}

type statService struct {
	counters     map[entity.Kind]Counter
	appointments AppointmentSource
}

func NewStatService(students, teachers, administrators, utilities Counter, appointments AppointmentSource) StatService {
	return &statService{
		counters: map[entity.Kind]Counter{
			entity.KindStudent:       students,
			entity.KindTeacher:       teachers,
			entity.KindAdministrator: administrators,
			entity.KindUtility:       utilities,
		},
		appointments: appointments,
	}
}

func (s *statService) Dashboard(ctx context.Context) (*DashData, error) {
	counts := make(map[entity.Kind]int64, len(s.counters))
	for kind, counter := range s.counters {
		n, err := counter.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", kind.Plural(), err)
		}
		counts[kind] = n
	}

	appointments, err := s.appointments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	latest := make([]*entity.Appointment, len(appointments))
	for i, a := range appointments {
		latest[len(appointments)-1-i] = a
	}

	return &DashData{
		Administrators:     counts[entity.KindAdministrator],
		Students:           counts[entity.KindStudent],
		Teachers:           counts[entity.KindTeacher],
		Utilitys:           counts[entity.KindUtility],
		Appointments:       int64(len(appointments)),
		LatestAppointments: latest,
	}, nil
}
