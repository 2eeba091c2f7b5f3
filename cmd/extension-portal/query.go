package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/terra-clan/extension-portal/internal/catalog"
	"github.com/terra-clan/extension-portal/internal/portal"
)

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a portal query and print the result as JSON",
	}

	var project struct{ search, area, status, course, sort string }
	projects := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.ParseProjectCriteria(project.search, project.area, project.status, project.course, project.sort)
			if err != nil {
				return err
			}
			return a.query(cmd, func(ctx context.Context, svc *portal.Service) (any, error) {
				result, err := svc.Projects(ctx, c)
				if err != nil {
					return nil, err
				}
				return catalog.DescribeProjects(result), nil
			})
		},
	}
	projects.Flags().StringVar(&project.search, "search", "", "substring of name or description")
	projects.Flags().StringVar(&project.area, "area", "", "area slug, or all")
	projects.Flags().StringVar(&project.status, "status", "", "open, in-progress, finished, or all")
	projects.Flags().StringVar(&project.course, "course", "", "course slug, or all")
	projects.Flags().StringVar(&project.sort, "sort", "", "name, start-date or hours")

	var enroll struct{ search, status, year string }
	enrollments := &cobra.Command{
		Use:   "enrollments",
		Short: "List the student's enrollments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.ParseEnrollmentCriteria(enroll.search, enroll.status, enroll.year)
			if err != nil {
				return err
			}
			return a.query(cmd, func(ctx context.Context, svc *portal.Service) (any, error) {
				result, err := svc.Enrollments(ctx, a.student, c)
				if err != nil {
					return nil, err
				}
				return catalog.DescribeEnrollments(result), nil
			})
		},
	}
	enrollments.Flags().StringVar(&enroll.search, "search", "", "substring of project name or coordinator")
	enrollments.Flags().StringVar(&enroll.status, "status", "", "pending, approved, rejected, or all")
	enrollments.Flags().StringVar(&enroll.year, "year", "", "enrollment year, or all")

	var cert struct{ search, year string }
	certificates := &cobra.Command{
		Use:   "certificates",
		Short: "List the student's certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.ParseCertificateCriteria(cert.search, cert.year)
			if err != nil {
				return err
			}
			return a.query(cmd, func(ctx context.Context, svc *portal.Service) (any, error) {
				return svc.Certificates(ctx, a.student, c)
			})
		},
	}
	certificates.Flags().StringVar(&cert.search, "search", "", "substring of project name or coordinator")
	certificates.Flags().StringVar(&cert.year, "year", "", "completion year, or all")

	history := &cobra.Command{
		Use:   "history",
		Short: "Show the student's participation summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.query(cmd, func(ctx context.Context, svc *portal.Service) (any, error) {
				return svc.History(ctx, a.student)
			})
		},
	}

	myProjects := &cobra.Command{
		Use:   "my-projects",
		Short: "Show the student's approved and pending projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.query(cmd, func(ctx context.Context, svc *portal.Service) (any, error) {
				mine, err := svc.MyProjects(ctx, a.student)
				if err != nil {
					return nil, err
				}
				return mine.Describe(), nil
			})
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show dataset counts and version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.query(cmd, func(_ context.Context, svc *portal.Service) (any, error) {
				return svc.Stats()
			})
		},
	}

	var sub struct {
		project string
		limit   int
	}
	submissions := &cobra.Command{
		Use:   "submissions",
		Short: "List recorded enrollment submissions (requires a database)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			subs, err := repo.ListSubmissions(ctx, sub.project, sub.limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), subs)
		},
	}
	submissions.Flags().StringVar(&sub.project, "project", "", "only submissions for this project ID")
	submissions.Flags().IntVar(&sub.limit, "limit", 50, "maximum number of submissions")

	cmd.AddCommand(projects, enrollments, certificates, history, myProjects, stats, submissions)
	return cmd
}

// query loads the portal without a shared cache and prints fn's result
func (a *app) query(cmd *cobra.Command, fn func(context.Context, *portal.Service) (any, error)) error {
	ctx := cmd.Context()
	svc, repo, err := a.loadPortal(ctx, nil)
	if err != nil {
		return err
	}
	if repo != nil {
		defer repo.Close()
	}

	v, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
