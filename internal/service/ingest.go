package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jask/ordens/internal/auth"
	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/orders"
)

// SeedFile is the YAML layout accepted by ImportYAML.
//
//	users:
//	  - login: ana
//	    name: Ana Souza
//	    role: GESTOR
//	work_orders:
//	  - number: OS-100
//	    title: Troca de lâmpada
//	    status: ABERTA
//	    deadline: 15/03/2025
type SeedFile struct {
	Users      []SeedUser      `yaml:"users"`
	WorkOrders []SeedWorkOrder `yaml:"work_orders"`
}

type SeedUser struct {
	Login string `yaml:"login"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
}

type SeedWorkOrder struct {
	Number    string `yaml:"number"`
	Title     string `yaml:"title"`
	Requester string `yaml:"requester"`
	Assignee  string `yaml:"assignee"`
	Category  string `yaml:"category"`
	Priority  string `yaml:"priority"`
	Status    string `yaml:"status"`
	Deadline  string `yaml:"deadline"`
}

// IngestService loads users and work orders from seed files.
type IngestService struct {
	Users      *repository.UserRepo
	WorkOrders *repository.WorkOrderRepo
	DateFormat string
}

type IngestResult struct {
	Users    int
	Imported int
	Updated  int
	Errors   []error
}

// ImportYAML upserts users by login and work orders by number. Bad entries are
// reported in the result and skipped; only an unreadable file fails the call.
func (s *IngestService) ImportYAML(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	if s.Users == nil || s.WorkOrders == nil {
		return res, errors.New("ingest: repositories not configured")
	}
	var f SeedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		return res, fmt.Errorf("decode seed file: %w", err)
	}

	for i, su := range f.Users {
		u, err := seedUser(su)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("users[%d]: %w", i, err))
			continue
		}
		if err := s.Users.Upsert(ctx, u); err != nil {
			return res, fmt.Errorf("users[%d]: %w", i, err)
		}
		res.Users++
	}

	for i, sw := range f.WorkOrders {
		w, err := s.workOrder(sw)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("work_orders[%d]: %w", i, err))
			continue
		}
		existing, err := s.WorkOrders.ByNumber(ctx, w.Number)
		if err != nil {
			return res, fmt.Errorf("work_orders[%d]: %w", i, err)
		}
		if existing != nil {
			w.ID = existing.ID
			w.CreatedAt = existing.CreatedAt
			if err := s.WorkOrders.Update(ctx, w); err != nil {
				return res, fmt.Errorf("work_orders[%d]: %w", i, err)
			}
			res.Updated++
			continue
		}
		if err := s.WorkOrders.Insert(ctx, w); err != nil {
			return res, fmt.Errorf("work_orders[%d]: %w", i, err)
		}
		res.Imported++
	}
	return res, nil
}

func seedUser(su SeedUser) (repository.User, error) {
	login := strings.TrimSpace(su.Login)
	if login == "" {
		return repository.User{}, errors.New("login is required")
	}
	role := auth.ParseRole(su.Role)
	if role == auth.RoleUnknown {
		return repository.User{}, fmt.Errorf("unknown role %q", su.Role)
	}
	name := strings.TrimSpace(su.Name)
	if name == "" {
		name = login
	}
	return repository.User{
		ID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte("user:"+login)).String(),
		Login: login,
		Name:  name,
		Role:  string(role),
	}, nil
}

func (s *IngestService) workOrder(sw SeedWorkOrder) (repository.WorkOrder, error) {
	w := repository.WorkOrder{
		ID:        uuid.NewString(),
		Number:    strings.TrimSpace(sw.Number),
		Title:     strings.TrimSpace(sw.Title),
		Requester: optional(sw.Requester),
		Assignee:  optional(sw.Assignee),
		Category:  strings.TrimSpace(sw.Category),
		Priority:  strings.ToUpper(strings.TrimSpace(sw.Priority)),
	}
	if w.Number == "" {
		return w, errors.New("number is required")
	}
	if w.Title == "" {
		return w, fmt.Errorf("%s: title is required", w.Number)
	}

	status := orders.StatusOpen
	if strings.TrimSpace(sw.Status) != "" {
		status = orders.ParseStatus(sw.Status)
		if status == orders.StatusAll || status == orders.StatusUnknown {
			return w, fmt.Errorf("%s: %w", w.Number, UnknownStatusError(sw.Status))
		}
	}
	w.Status = string(status)

	if d := strings.TrimSpace(sw.Deadline); d != "" {
		layout := s.DateFormat
		if layout == "" {
			layout = "02/01/2006"
		}
		t, err := time.ParseInLocation(layout, d, time.UTC)
		if err != nil {
			return w, fmt.Errorf("%s: deadline %q: expected %s", w.Number, d, layout)
		}
		w.Deadline = &t
	}
	return w, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
