package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
	"alfredoptarigan/course-evaluator/internal/scoring"
	"alfredoptarigan/course-evaluator/internal/services"
)

// criteriaFile maps a course type to its catalog.
type criteriaFile struct {
	CourseTypes map[string][]scoring.Criterion `yaml:"course_types"`
}

type directoryFile struct {
	Colleges  []models.College    `yaml:"colleges"`
	Classes   []models.Class      `yaml:"classes"`
	Courses   []models.Course     `yaml:"courses"`
	Offerings []models.Offering   `yaml:"offerings"`
	Users     []models.UserRecord `yaml:"users"`
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func runSeedCriteria(cmd *cobra.Command, args []string) error {
	var file criteriaFile
	if err := readYAML(args[0], &file); err != nil {
		return err
	}
	_, svc, err := connect()
	if err != nil {
		return err
	}
	return seedCriteria(cmd.Context(), svc.Criteria, file)
}

// seedCriteria replaces catalogs in course type order. It stops at the first
// invalid catalog; earlier ones stay replaced.
func seedCriteria(ctx context.Context, criteria services.CriteriaService, file criteriaFile) error {
	types := make([]string, 0, len(file.CourseTypes))
	for t := range file.CourseTypes {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		catalog, err := criteria.ReplaceCatalog(ctx, t, file.CourseTypes[t])
		if err != nil {
			return fmt.Errorf("course type %s: %w", t, err)
		}
		fmt.Printf("✅ %s: %d criteria, total weight %.2f\n", t, catalog.Len(), catalog.TotalWeight())
	}
	return nil
}

func runSeedDirectory(cmd *cobra.Command, args []string) error {
	var file directoryFile
	if err := readYAML(args[0], &file); err != nil {
		return err
	}
	repos, svc, err := connect()
	if err != nil {
		return err
	}
	return seedDirectory(cmd.Context(), repos.Directory, svc.Accounts, file)
}

// seedDirectory upserts directory rows and registers users that do not
// exist yet.
func seedDirectory(ctx context.Context, dir repositories.DirectoryRepository, accounts services.AccountService, file directoryFile) error {
	for i := range file.Colleges {
		if err := dir.UpsertCollege(ctx, &file.Colleges[i]); err != nil {
			return err
		}
	}
	for i := range file.Classes {
		if err := dir.UpsertClass(ctx, &file.Classes[i]); err != nil {
			return err
		}
	}
	for i := range file.Courses {
		if err := dir.UpsertCourse(ctx, &file.Courses[i]); err != nil {
			return err
		}
	}
	for i := range file.Offerings {
		if err := dir.UpsertOffering(ctx, &file.Offerings[i]); err != nil {
			return err
		}
	}
	created := 0
	for i := range file.Users {
		if _, err := accounts.Get(ctx, file.Users[i].ID); err == nil {
			continue
		}
		if err := accounts.Register(ctx, &file.Users[i]); err != nil {
			return fmt.Errorf("user %s: %w", file.Users[i].ID, err)
		}
		created++
	}
	fmt.Printf("✅ Seeded %d colleges, %d classes, %d courses, %d offerings, %d new users\n",
		len(file.Colleges), len(file.Classes), len(file.Courses), len(file.Offerings), created)
	return nil
}
