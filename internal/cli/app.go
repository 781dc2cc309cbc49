package cli

import (
	"context"
	"fmt"
	"time"

	"stairs/gym-reports/internal/config"
	"stairs/gym-reports/internal/notify"
	"stairs/gym-reports/internal/repository"
	mongorepo "stairs/gym-reports/internal/repository/mongo"
	"stairs/gym-reports/internal/service"
	"stairs/gym-reports/internal/storage"
	"stairs/gym-reports/internal/summarizer"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// app bundles configuration, the database connection and the wired services
// that every command needs.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	dbClient *mongodriver.Client

	patientRepo repository.PatientRepository
	trainerRepo repository.TrainerRepository
	workoutRepo repository.WorkoutRepository
	assessRepo  repository.AssessmentRepository
	weeklyRepo  repository.WeeklyReportRepository
	monthlyRepo repository.MonthlyReportRepository

	reportService service.ReportService
	namingService service.NamingService
}

// newApp loads config, connects to the store and wires the service graph.
func newApp(opts *RootOptions) (*app, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		dbClient: dbClient,

		patientRepo: mongorepo.NewMongoPatientRepository(appDB),
		trainerRepo: mongorepo.NewMongoTrainerRepository(appDB),
		workoutRepo: mongorepo.NewMongoWorkoutRepository(appDB),
		assessRepo:  mongorepo.NewMongoAssessmentRepository(appDB),
		weeklyRepo:  mongorepo.NewMongoWeeklyReportRepository(appDB),
		monthlyRepo: mongorepo.NewMongoMonthlyReportRepository(appDB),
	}

	sum := a.newSummarizer()
	email := a.newEmailSender()
	whatsapp := a.newMessageSender()
	archive := a.newArchive()

	a.reportService = service.NewReportService(
		a.patientRepo, a.workoutRepo, a.assessRepo, a.weeklyRepo, a.monthlyRepo,
		sum, email, whatsapp, archive, logger)
	a.namingService = service.NewNamingService(
		a.patientRepo, a.trainerRepo, a.workoutRepo, a.assessRepo,
		a.weeklyRepo, a.monthlyRepo, logger)

	return a, nil
}

func (a *app) close() {
	if err := mongorepo.DisconnectDB(a.dbClient); err != nil {
		a.logger.Warn("failed to disconnect MongoDB", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// ensureIndexes creates the collections' indexes. Runs with its own timeout so
// a slow store never wedges startup.
func (a *app) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	appDB := a.dbClient.Database(a.cfg.Database.Name)
	mongorepo.EnsurePatientIndexes(ctx, appDB.Collection("patients"))
	mongorepo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
	mongorepo.EnsureAssessmentIndexes(ctx, appDB.Collection("assessments"))
	mongorepo.EnsureWeeklyReportIndexes(ctx, appDB.Collection("weekly_reports"))
	mongorepo.EnsureMonthlyReportIndexes(ctx, appDB.Collection("monthly_reports"))
}

func (a *app) newSummarizer() summarizer.Summarizer {
	if a.cfg.Gemini.APIKey == "" {
		a.logger.Info("no Gemini API key configured, using metric-based summaries")
		return summarizer.Static{}
	}
	sum, err := summarizer.NewGenAISummarizer(context.Background(), a.cfg.Gemini.APIKey, a.cfg.Gemini.Model, a.logger)
	if err != nil {
		a.logger.Warn("failed to initialize Gemini summarizer, using metric-based summaries", zap.Error(err))
		return summarizer.Static{}
	}
	return sum
}

func (a *app) newEmailSender() notify.EmailSender {
	if a.cfg.SMTP.Username == "" || a.cfg.SMTP.Password == "" {
		a.logger.Info("SMTP not configured, email delivery disabled")
		return nil
	}
	return notify.NewSMTPSender(a.cfg.SMTP.Host, a.cfg.SMTP.Port,
		a.cfg.SMTP.Username, a.cfg.SMTP.Password, a.cfg.SMTP.From, a.logger)
}

func (a *app) newMessageSender() notify.MessageSender {
	if a.cfg.Twilio.AccountSID == "" || a.cfg.Twilio.AuthToken == "" {
		a.logger.Info("Twilio not configured, WhatsApp delivery disabled")
		return nil
	}
	return notify.NewTwilioSender(a.cfg.Twilio.AccountSID, a.cfg.Twilio.AuthToken,
		a.cfg.Twilio.WhatsAppFrom, a.logger)
}

func (a *app) newArchive() storage.ArchiveStorage {
	if a.cfg.S3.BucketName == "" {
		a.logger.Info("S3 not configured, report archival disabled")
		return nil
	}
	archive, err := storage.NewS3Storage(a.cfg.S3, a.logger)
	if err != nil {
		a.logger.Warn("failed to initialize S3 archive storage, archival disabled", zap.Error(err))
		return nil
	}
	return archive
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
