package system

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/scaleapp/backend/config"
	"github.com/scaleapp/backend/internal/service/assessment"
	"github.com/scaleapp/backend/pkg/database"
)

func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with a sample assessment",
		Long: `Seed inserts a PHQ-9 depression screening assessment with its nine
questions and four answer options. Intended for development environments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			client, err := database.NewEntClient(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to create ent client: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			svc := assessment.New(client)
			desc := "Nine-item depression screening scale"
			req := assessment.CreateAssessmentRequest{
				Name:        "Patient Health Questionnaire-9",
				Type:        "phq9",
				Description: &desc,
				Cutoff:      10,
				MaxScore:    27,
			}
			for i, text := range phq9Questions {
				req.Questions = append(req.Questions, assessment.QuestionInput{Text: text, Order: i + 1})
			}
			for i, opt := range phq9Options {
				req.Options = append(req.Options, assessment.OptionInput{Text: opt, Value: i, Order: i + 1})
			}

			a, err := svc.Create(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to seed assessment: %w", err)
			}

			fmt.Printf("Seeded assessment %q (%s)\n", a.Name, a.ID)
			return nil
		},
	}

	return cmd
}

var phq9Questions = []string{
	"Little interest or pleasure in doing things",
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself, or that you are a failure",
	"Trouble concentrating on things",
	"Moving or speaking slowly, or being fidgety or restless",
	"Thoughts that you would be better off dead or of hurting yourself",
}

var phq9Options = []string{
	"Not at all",
	"Several days",
	"More than half the days",
	"Nearly every day",
}
