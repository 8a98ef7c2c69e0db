package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/config"
	"github.com/abhisek/tutordesk/internal/refresh"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print the learner's progress and learning path",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Role = config.RoleLearner
		if err := validate(cfg, false); err != nil {
			return err
		}
		timeout, _ := cfg.Timeout()
		if timeout == 0 {
			timeout = 10 * time.Second
		}

		learner := api.NewLearner(api.NewClient(api.WithTimeout(timeout)), cfg.RoleContext())
		res := refresh.NewCoordinator(learner, refresh.NewStore(), nil).Run(cmd.Context())
		if !res.ProgressOK {
			return fmt.Errorf("could not load progress from %s", cfg.BaseURL)
		}

		p := res.Progress
		fmt.Printf("Overall accuracy  %g%%\n", p.OverallAccuracy)
		fmt.Printf("Total attempts    %d\n", p.TotalAttempts)
		fmt.Printf("Time spent        %d mins\n", p.TimeSpentMinutes)
		fmt.Printf("Strong topics     %s\n", joinOr(p.Strengths))
		fmt.Printf("Weak topics       %s\n", joinOr(p.Weaknesses))

		if len(p.TopicStats) > 0 {
			fmt.Printf("\n%-20s  %8s  %7s\n", "Topic", "Accuracy", "Correct")
			fmt.Println(strings.Repeat("─", 40))
			names := make([]string, 0, len(p.TopicStats))
			for name := range p.TopicStats {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				st := p.TopicStats[name]
				fmt.Printf("%-20s  %7g%%  %3d/%-3d\n", name, st.Accuracy, st.Correct, st.Total)
			}
		}

		if res.PathOK {
			fmt.Printf("\n%-20s  %-8s  %s\n", "Learning path", "Mastery", "Next step")
			fmt.Println(strings.Repeat("─", 72))
			for _, it := range res.Path {
				fmt.Printf("%-20s  %-8s  %s\n", it.TopicName, it.Mastery, it.Action)
			}
		}

		for _, r := range res.Recommendations {
			fmt.Printf("\n%s: %s %s\n%s\n", r.Title, r.Lead, r.Summary(), r.Advice)
		}
		return nil
	},
}

func joinOr(items []string) string {
	if len(items) == 0 {
		return "None yet"
	}
	return strings.Join(items, ", ")
}
