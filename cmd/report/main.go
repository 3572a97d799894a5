package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"

	"github.com/quoc48/expense-tracker/internal/clients/auth"
	"github.com/quoc48/expense-tracker/internal/clients/postgrest"
	"github.com/quoc48/expense-tracker/internal/config"
	"github.com/quoc48/expense-tracker/internal/logger"
	"github.com/quoc48/expense-tracker/internal/model/analytics"
	"github.com/quoc48/expense-tracker/internal/model/period"
	"github.com/quoc48/expense-tracker/internal/model/repository"
)

const (
	emailEnvKey    = "SUPABASE_EMAIL"
	passwordEnvKey = "SUPABASE_PASSWORD"
)

func main() {
	logger.Info("Report init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	closer, err := initTracing("expense-report")
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	// Credentials live next to the connection settings, never in yaml.
	_ = godotenv.Load(".env.local")
	email, password := os.Getenv(emailEnvKey), os.Getenv(passwordEnvKey)
	if email == "" || password == "" {
		logger.Fatal("missing credentials",
			zap.String("email-env", emailEnvKey),
			zap.String("password-env", passwordEnvKey))
	}

	ctx := context.Background()

	session, err := auth.New(conf.Supabase()).SignIn(ctx, email, password)
	if err != nil {
		logger.Fatal("failed to sign in", zap.Error(err))
	}

	store := postgrest.New(conf.Supabase(), session)
	calendar := period.Calendar{
		WeekStartDay: conf.App().WeekStartDay(),
		Location:     conf.App().Location(),
	}
	expenses := repository.NewExpenseRepo(store, session, calendar)

	p := parsePeriod(os.Args)
	start, end := p.Range(time.Now(), calendar)

	list, err := expenses.ListRange(ctx, start, end.Add(-time.Second))
	if err != nil {
		logger.Fatal("failed to load expenses", zap.Error(err))
	}

	printReport(p, analytics.Summarize(list), conf.App().MonthlyBudget())
	logger.Info("Report init - end")
}

func parsePeriod(args []string) period.Period {
	if len(args) < 2 {
		return period.ThisMonth()
	}
	switch args[1] {
	case "today":
		return period.Today()
	case "week":
		return period.ThisWeek()
	case "year":
		return period.ThisYear()
	default:
		return period.ThisMonth()
	}
}

func printReport(p period.Period, summary analytics.Summary, budget decimal.Decimal) {
	fmt.Printf("Spending report (%s)\n\n", p)

	if len(summary.Breakdown) == 0 {
		fmt.Println("No expenses in this period.")
		return
	}

	for i, stat := range summary.Breakdown {
		fmt.Printf("%2d. %s %s: %s (%.1f%%, %d tx)\n",
			i+1, stat.CategoryIcon, stat.CategoryName,
			analytics.FormatVND(stat.Amount), stat.Percentage, stat.TransactionCount)
	}
	fmt.Printf("\nTotal: %s (%s)\n",
		analytics.FormatVND(summary.Total), analytics.FormatShortVND(summary.Total))
	fmt.Printf("Average per transaction: %s\n",
		analytics.FormatVND(summary.AveragePerTransaction))

	status := analytics.CompareBudget(summary.Total, budget)
	switch {
	case status.Exceeded():
		fmt.Printf("Budget: %.1f%% of %s - EXCEEDED\n",
			status.PercentUsed, analytics.FormatVND(status.Budget))
	case status.NearLimit():
		fmt.Printf("Budget: %.1f%% of %s - near limit\n",
			status.PercentUsed, analytics.FormatVND(status.Budget))
	default:
		fmt.Printf("Budget: %.1f%% of %s, %s remaining\n",
			status.PercentUsed, analytics.FormatVND(status.Budget),
			analytics.FormatVND(status.Remaining))
	}
}

func initTracing(service string) (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
	}
	return cfg.InitGlobalTracer(service)
}
