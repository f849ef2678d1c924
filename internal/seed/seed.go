// Package seed populates a development database with plausible users,
// projects, labels and items by driving the same operations the
// application uses, so the seeded data went through the full
// validation and duplicate-detection contract.
package seed

import (
	"context"
	"fmt"
	"time"

	"fiwa/internal/backend"
	"fiwa/internal/core"
	"fiwa/internal/log"
)

var (
	firstNames = []string{"Ada", "Grace", "Linus", "Barbara", "Ken", "Margaret", "Dennis", "Radia", "Alan", "Frances"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Liskov", "Thompson", "Hamilton", "Ritchie", "Perlman", "Turing", "Allen"}

	projectWords = []string{"Maple", "Harbor", "Summit", "Willow", "Aurora", "Cedar", "Juniper", "Meadow", "Quartz", "Ember"}
	currencies   = []string{"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD"}

	labelNames = []string{"Groceries", "Rent", "Transport", "Dining", "Utilities", "Travel"}
	itemNames  = []string{"Weekly shop", "Train ticket", "Dinner out", "Electricity bill", "Coffee beans"}
)

// Seeder drives bulk creation through a backend.
type Seeder struct {
	be  backend.Backend
	log *log.Logger
}

func New(be backend.Backend, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Seeder{be: be, log: logger.WithComponent(log.ComponentSeed)}
}

// Run seeds numUsers users (user0..userN, the first a superuser, each
// with password u<N>), performs a smoke login, creates one project per
// user plus extras for the first two, shares a project between them,
// and fills every project with labels and a few items. Quota and
// duplicate rejections along the way are expected and logged, not
// fatal.
func (s *Seeder) Run(ctx context.Context, numUsers int) error {
	if err := s.users(ctx, numUsers); err != nil {
		return err
	}

	// Smoke login with the second seeded user, mirroring a first
	// interactive session.
	if sess, err := s.be.Users().Authenticate(ctx, "user1", "u1"); err != nil {
		return fmt.Errorf("seed smoke login: %w", err)
	} else if sess == nil {
		s.log.WarnContext(ctx, "seed smoke login rejected")
	} else {
		s.log.InfoContext(ctx, "seed smoke login ok", log.FieldUserID, sess.UserID)
	}

	projectsByUser, err := s.projects(ctx)
	if err != nil {
		return err
	}
	if err := s.labelsAndItems(ctx, projectsByUser); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "seeding finished", "users", numUsers)
	return nil
}

func (s *Seeder) users(ctx context.Context, numUsers int) error {
	for i := 0; i < numUsers; i++ {
		maxProjects := i%3 + 1
		nu := core.NewUser{
			FirstName:   firstNames[i%len(firstNames)],
			LastName:    lastNames[i%len(lastNames)],
			Username:    fmt.Sprintf("user%d", i),
			Email:       fmt.Sprintf("user%d@fiwa.com", i),
			Password:    fmt.Sprintf("u%d", i),
			Birthday:    fmt.Sprintf("19%02d-0%d-1%d", 70+i%30, i%9+1, i%9),
			MaxProjects: &maxProjects,
			IsSuperuser: i == 0,
		}
		userID, err := s.be.Users().Create(ctx, nu)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", nu.Username, err)
		}
		s.log.DebugContext(ctx, "seeded user", log.FieldUserID, userID, "username", nu.Username)
	}
	s.log.InfoContext(ctx, "seeded users", log.FieldCount, numUsers)
	return nil
}

func (s *Seeder) projects(ctx context.Context) (map[int64][]int64, error) {
	ids, err := s.be.Users().AllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed projects: %w", err)
	}
	byUser := make(map[int64][]int64, len(ids))

	// One project per user.
	for i, userID := range ids {
		s.createProject(ctx, byUser, userID, i)
	}

	// The first user gets two more, the second one more; quota
	// rejections here are part of the exercise.
	if len(ids) > 0 {
		for i := 0; i < 2; i++ {
			s.createProject(ctx, byUser, ids[0], len(ids)+i)
		}
	}
	if len(ids) > 1 {
		s.createProject(ctx, byUser, ids[1], len(ids)+2)
	}

	// Share the first user's second project with the second user.
	if len(ids) > 1 && len(byUser[ids[0]]) > 1 {
		shared := byUser[ids[0]][1]
		err := s.be.Projects().AddMember(ctx, shared, ids[1], core.DefaultPermModel, false)
		switch {
		case err == nil:
			s.log.InfoContext(ctx, "shared project seeded",
				log.FieldProjectID, shared, log.FieldUserID, ids[1])
		case core.IsDuplicate(err) || core.IsQuota(err):
			s.log.WarnContext(ctx, "could not share project", log.FieldError, err)
		default:
			return nil, fmt.Errorf("seed shared membership: %w", err)
		}
	}

	return byUser, nil
}

func (s *Seeder) createProject(ctx context.Context, byUser map[int64][]int64, userID int64, n int) {
	np := core.NewProject{
		Name:         fmt.Sprintf("Project %s %s", projectWords[n%len(projectWords)], projectWords[(n+3)%len(projectWords)]),
		Description:  fmt.Sprintf("Shared expenses, round %d", n+1),
		CurrencyMain: currencies[n%len(currencies)],
		CurrencyList: []string{currencies[n%len(currencies)], currencies[(n+1)%len(currencies)]},
	}
	projectID, err := s.be.Projects().Create(ctx, np, userID)
	if err != nil {
		if core.IsQuota(err) || core.IsDuplicate(err) {
			s.log.WarnContext(ctx, "project not seeded",
				log.FieldUserID, userID, log.FieldError, err)
			return
		}
		s.log.ErrorContext(ctx, "project seeding failed",
			log.FieldUserID, userID, log.FieldError, err)
		return
	}
	byUser[userID] = append(byUser[userID], projectID)
}

func (s *Seeder) labelsAndItems(ctx context.Context, byUser map[int64][]int64) error {
	for userID, projects := range byUser {
		for _, projectID := range projects {
			var tags []int64
			for i, name := range labelNames[:4] {
				labelID, err := s.be.Labels().Create(ctx, core.NewLabel{
					Name:        name,
					Description: fmt.Sprintf("%s spending", name),
				}, projectID)
				if err != nil {
					if core.IsDuplicate(err) {
						continue
					}
					return fmt.Errorf("seed label %s: %w", name, err)
				}
				if i < 2 {
					tags = append(tags, labelID)
				}
			}

			for i := 0; i < 3; i++ {
				_, err := s.be.Items().Create(ctx, core.NewItem{
					ProjectID:  projectID,
					Name:       itemNames[i%len(itemNames)],
					Note:       "seeded",
					Price:      float64(10*(i+1)) + 0.5,
					Currency:   currencies[i%len(currencies)],
					BoughtDate: time.Now().AddDate(0, 0, -i),
					BoughtByID: userID,
					AddedByID:  userID,
					Tags:       tags,
				})
				if err != nil {
					return fmt.Errorf("seed item: %w", err)
				}
			}
		}
	}
	return nil
}
