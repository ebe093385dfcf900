package usecase_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go-jobboard-backend/internal/domain"
)

// world is an in-memory backing store for end-to-end usecase scenarios.
type world struct {
	mu       sync.Mutex
	users    map[string]domain.User
	jobs     map[int64]domain.Job
	apps     map[int64]domain.Application
	profiles map[string][]byte
	nextJob  int64
	nextApp  int64
}

func newWorld() *world {
	return &world{
		users:    map[string]domain.User{},
		jobs:     map[int64]domain.Job{},
		apps:     map[int64]domain.Application{},
		profiles: map[string][]byte{},
	}
}

type worldUsers struct{ w *world }
type worldJobs struct{ w *world }
type worldApps struct{ w *world }
type worldProfiles struct{ w *world }

func (r worldUsers) Create(_ context.Context, u *domain.User) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	for _, existing := range r.w.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.w.users[u.ID] = *u
	return nil
}

func (r worldUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	u, ok := r.w.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r worldUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	for _, u := range r.w.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r worldJobs) Create(_ context.Context, j *domain.Job) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.nextJob++
	j.ID = r.w.nextJob
	r.w.jobs[j.ID] = *j
	return nil
}

func (r worldJobs) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	j, ok := r.w.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &j, nil
}

func (r worldJobs) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Job, error) {
	return r.GetByID(ctx, id)
}

func (r worldJobs) Search(_ context.Context, f domain.JobFilter) ([]domain.Job, int64, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var out []domain.Job
	for _, j := range r.w.jobs {
		if f.CreatedAfter != nil && j.CreatedAt.Before(*f.CreatedAfter) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	total := int64(len(out))
	if f.Offset >= len(out) {
		return []domain.Job{}, total, nil
	}
	out = out[f.Offset:]
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r worldJobs) FetchByOwner(_ context.Context, ownerID string) ([]domain.Job, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	out := []domain.Job{}
	for _, j := range r.w.jobs {
		if j.OwnerUserID == ownerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r worldJobs) Update(_ context.Context, j *domain.Job) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.jobs[j.ID]; !ok {
		return domain.ErrNotFound
	}
	r.w.jobs[j.ID] = *j
	return nil
}

func (r worldJobs) Delete(_ context.Context, id int64) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	for _, a := range r.w.apps {
		if a.JobID == id {
			return domain.ErrReferenced
		}
	}
	delete(r.w.jobs, id)
	return nil
}

func (r worldApps) Create(_ context.Context, a *domain.Application) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.jobs[a.JobID]; !ok {
		return domain.ErrReferenced
	}
	for _, existing := range r.w.apps {
		if existing.JobID == a.JobID && existing.UserID == a.UserID {
			return domain.ErrDuplicate
		}
	}
	r.w.nextApp++
	a.ID = r.w.nextApp
	r.w.apps[a.ID] = *a
	return nil
}

func (r worldApps) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	a, ok := r.w.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r worldApps) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Application, error) {
	return r.GetByID(ctx, id)
}

func (r worldApps) filter(keep func(domain.Application) bool) []domain.Application {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	out := []domain.Application{}
	for _, a := range r.w.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r worldApps) GetByUserID(_ context.Context, userID string) ([]domain.Application, error) {
	return r.filter(func(a domain.Application) bool { return a.UserID == userID }), nil
}

func (r worldApps) GetByJobID(_ context.Context, jobID int64) ([]domain.Application, error) {
	return r.filter(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r worldApps) CheckExists(_ context.Context, jobID int64, userID string) (bool, error) {
	return len(r.filter(func(a domain.Application) bool { return a.JobID == jobID && a.UserID == userID })) > 0, nil
}

func (r worldApps) CountByJobID(ctx context.Context, jobID int64) (int64, error) {
	apps, _ := r.GetByJobID(ctx, jobID)
	return int64(len(apps)), nil
}

func (r worldApps) CountByStatus(ctx context.Context, userID string) (map[domain.ApplicationStatus]int64, error) {
	apps, _ := r.GetByUserID(ctx, userID)
	out := map[domain.ApplicationStatus]int64{}
	for _, a := range apps {
		out[a.Status]++
	}
	return out, nil
}

func (r worldApps) UpdateStatus(_ context.Context, id int64, status domain.ApplicationStatus, updatedAt time.Time) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	a, ok := r.w.apps[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = updatedAt
	r.w.apps[id] = a
	return nil
}

func (r worldApps) Delete(_ context.Context, id int64) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	if _, ok := r.w.apps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.w.apps, id)
	return nil
}

// Profiles are stored serialized so that Get never aliases what Save got.
func (r worldProfiles) Save(_ context.Context, p domain.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.profiles[p.Owner()] = b
	return nil
}

func (r worldProfiles) Get(_ context.Context, userID string, role domain.Role) (domain.Profile, error) {
	r.w.mu.Lock()
	b, ok := r.w.profiles[userID]
	r.w.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := domain.PolicyFor(role).NewProfile()
	if err := json.Unmarshal(b, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r worldProfiles) Delete(_ context.Context, userID string) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	delete(r.w.profiles, userID)
	return nil
}
