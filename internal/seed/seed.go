// Package seed loads demo users, jobs, questions, tests and applications from a
// YAML file.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/lshigami/Hireboard/internal/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// File is the seed document. Entries reference each other by key.
type File struct {
	Users        []User        `yaml:"users"`
	Jobs         []Job         `yaml:"jobs"`
	Questions    []Question    `yaml:"questions"`
	Tests        []Test        `yaml:"tests"`
	Applications []Application `yaml:"applications"`
}

type User struct {
	Key   string     `yaml:"key"`
	Name  string     `yaml:"name"`
	Email string     `yaml:"email"`
	Role  model.Role `yaml:"role"`
}

type Job struct {
	Key       string `yaml:"key"`
	Title     string `yaml:"title"`
	Recruiter string `yaml:"recruiter"`
}

// Question and Test carry their definition in the same shape as the HTTP API.
type Question struct {
	Key   string         `yaml:"key"`
	Owner string         `yaml:"owner"`
	Spec  map[string]any `yaml:"spec"`
}

type Test struct {
	Key       string         `yaml:"key"`
	Owner     string         `yaml:"owner"`
	Questions []string       `yaml:"questions"`
	Spec      map[string]any `yaml:"spec"`
}

type Application struct {
	Candidate string `yaml:"candidate"`
	Job       string `yaml:"job"`
	Round     int    `yaml:"round"`
	Test      string `yaml:"test"`
}

// Result maps seed keys to the ids they were stored under.
type Result struct {
	Users     map[string]model.User
	Jobs      map[string]uint
	Questions map[string]uint
	Tests     map[string]uint
}

type Seeder struct {
	Users        repository.UserRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Questions    service.QuestionService
	Tests        service.TestService
	Rounds       service.ApplicationService
}

func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &f, nil
}

// Run stores every entry of f in dependency order. Questions and tests go through
// the services so seeded data passes the same validation as API writes.
func (s *Seeder) Run(ctx context.Context, f *File) (*Result, error) {
	res := &Result{
		Users:     make(map[string]model.User, len(f.Users)),
		Jobs:      make(map[string]uint, len(f.Jobs)),
		Questions: make(map[string]uint, len(f.Questions)),
		Tests:     make(map[string]uint, len(f.Tests)),
	}

	for _, u := range f.Users {
		user := &model.User{Name: u.Name, Email: u.Email, Role: u.Role}
		if err := s.Users.Upsert(ctx, user); err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Key, err)
		}
		res.Users[u.Key] = *user
	}

	for _, j := range f.Jobs {
		recruiter, err := res.user(j.Recruiter, model.RoleRecruiter)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", j.Key, err)
		}
		job := &model.Job{Title: j.Title, RecruiterID: recruiter.ID}
		if err := s.Jobs.Create(ctx, job); err != nil {
			return nil, fmt.Errorf("job %q: %w", j.Key, err)
		}
		res.Jobs[j.Key] = job.ID
	}

	for _, q := range f.Questions {
		owner, err := res.user(q.Owner, model.RoleRecruiter)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", q.Key, err)
		}
		var req dto.QuestionUpsertDTO
		if err := convert(q.Spec, &req); err != nil {
			return nil, fmt.Errorf("question %q: %w", q.Key, err)
		}
		created, err := s.Questions.CreateQuestion(ctx, owner.ID, req)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", q.Key, err)
		}
		res.Questions[q.Key] = created.ID
	}

	for _, t := range f.Tests {
		owner, err := res.user(t.Owner, model.RoleRecruiter)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", t.Key, err)
		}
		var req dto.TestUpsertDTO
		if err := convert(t.Spec, &req); err != nil {
			return nil, fmt.Errorf("test %q: %w", t.Key, err)
		}
		for _, key := range t.Questions {
			id, ok := res.Questions[key]
			if !ok {
				return nil, fmt.Errorf("test %q: unknown question %q", t.Key, key)
			}
			req.ManualQuestions = append(req.ManualQuestions, id)
		}
		created, err := s.Tests.CreateTest(ctx, owner.ID, req)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", t.Key, err)
		}
		res.Tests[t.Key] = created.ID
	}

	for i, a := range f.Applications {
		candidate, err := res.user(a.Candidate, model.RoleCandidate)
		if err != nil {
			return nil, fmt.Errorf("application %d: %w", i, err)
		}
		jobID, ok := res.Jobs[a.Job]
		if !ok {
			return nil, fmt.Errorf("application %d: unknown job %q", i, a.Job)
		}
		app := &model.Application{CandidateID: candidate.ID, JobID: jobID, Status: model.ApplicationPending}
		if err := s.Applications.Create(ctx, app); err != nil {
			return nil, fmt.Errorf("application %d: %w", i, err)
		}
		if a.Test == "" {
			continue
		}
		testID, ok := res.Tests[a.Test]
		if !ok {
			return nil, fmt.Errorf("application %d: unknown test %q", i, a.Test)
		}
		round := a.Round
		if round == 0 {
			round = 1
		}
		job := f.job(a.Job)
		recruiter := res.Users[job.Recruiter]
		if _, err := s.Rounds.AssignRound(ctx, recruiter.ID, app.ID, dto.AssignRoundDTO{TestID: testID, Round: round}); err != nil {
			return nil, fmt.Errorf("application %d: %w", i, err)
		}
	}

	log.Info().
		Int("users", len(res.Users)).
		Int("jobs", len(res.Jobs)).
		Int("questions", len(res.Questions)).
		Int("tests", len(res.Tests)).
		Int("applications", len(f.Applications)).
		Msg("Seed data loaded")
	return res, nil
}

func (r *Result) user(key string, role model.Role) (model.User, error) {
	u, ok := r.Users[key]
	if !ok {
		return model.User{}, fmt.Errorf("unknown user %q", key)
	}
	if u.Role != role {
		return model.User{}, fmt.Errorf("user %q is a %s, not a %s", key, u.Role, role)
	}
	return u, nil
}

func (f *File) job(key string) Job {
	for _, j := range f.Jobs {
		if j.Key == key {
			return j
		}
	}
	return Job{}
}

// convert re-decodes a YAML mapping through JSON so the API DTO tags apply.
func convert(spec map[string]any, out any) error {
	raw, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
