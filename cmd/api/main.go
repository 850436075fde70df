package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/mapeo-rewards/internal/config"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/auth"
	"github.com/xavierca1/mapeo-rewards/internal/infra/database"
	"github.com/xavierca1/mapeo-rewards/internal/infra/http/handlers"
	"github.com/xavierca1/mapeo-rewards/internal/infra/http/middleware"
	"github.com/xavierca1/mapeo-rewards/internal/infra/http/router"
	"github.com/xavierca1/mapeo-rewards/internal/infra/integration/supabase"
	"github.com/xavierca1/mapeo-rewards/internal/infra/logging"
	"github.com/xavierca1/mapeo-rewards/internal/infra/mail"
	"github.com/xavierca1/mapeo-rewards/internal/infra/memory"
	"github.com/xavierca1/mapeo-rewards/internal/infra/queue"
	"github.com/xavierca1/mapeo-rewards/internal/infra/worker"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

const demoPassword = "mapeo2023"

// repositories agrupa as portas de dados, seja qual for o backend.
type repositories struct {
	agents       entity.AgentRepositoryInterface
	statuses     entity.StatusRepository
	profiles     entity.ProfileRepositoryInterface
	leads        usecase.LeadDirectory
	transactions entity.TransactionRepositoryInterface
}

// storage é o bucket dos documentos de identidade.
type storage interface {
	usecase.DocumentStorage
	handlers.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("❌ configuração inválida")
	}
	logging.Setup(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher := auth.NewBcryptHasher()
	tokens := auth.NewJWTIssuer(cfg.JWTSecret, cfg.SessionTTL)

	// 1. Repositórios
	var (
		repos repositories
		db    *sql.DB
	)
	switch cfg.DataBackend {
	case config.BackendPostgres:
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			logrus.WithError(err).Fatal("❌ falha ao conectar no Postgres")
		}
		defer db.Close()
		if err := database.EnsureSchema(ctx, db); err != nil {
			logrus.WithError(err).Fatal("❌ falha ao criar o schema")
		}
		agents := database.NewAgentRepository(db)
		repos = repositories{
			agents:       agents,
			statuses:     agents,
			profiles:     database.NewProfileRepository(db),
			leads:        database.NewLeadRepository(db),
			transactions: database.NewTransactionRepository(db),
		}
	default:
		repos, err = memoryRepositories(ctx, cfg, hasher)
		if err != nil {
			logrus.WithError(err).Fatal("❌ falha ao carregar dados de demonstração")
		}
	}

	// 2. Storage e fila
	var docs storage
	if cfg.SupabaseEnabled() {
		docs = supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Bucket)
	} else {
		mem := memory.NewDocumentStorage()
		mem.SetLatency(memory.DefaultUploadLatency)
		docs = mem
		logrus.Warn("⚠️ SUPABASE_URL não configurada, documentos ficam em memória")
	}

	var (
		producer usecase.QueueProducerInterface = queue.NewLogProducer()
		broker   handlers.Broker
	)
	if cfg.RabbitMQURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logrus.WithError(err).Fatal("❌ falha ao conectar no RabbitMQ")
		}
		defer rabbit.Close()
		producer = queue.NewProducer(rabbit.Ch)
		broker = rabbit

		if cfg.MailEnabled() {
			startNotificationWorker(ctx, cfg, rabbit, repos.profiles)
		}
	} else {
		logrus.Warn("⚠️ RABBITMQ_URL não configurada, eventos vão apenas para o log")
	}

	// 3. Store de verificação
	store := usecase.NewVerificationStore(repos.statuses)
	defer store.Close()
	if _, err := store.Subscribe(func(ctx context.Context, c usecase.StatusChange) {
		middleware.RecordVerificationTransition(string(c.From), string(c.To))
		if err := producer.PublishEvent(ctx, queue.EventPayload{
			Event:          queue.EventVerificationChanged,
			AgentID:        c.AgentID,
			Status:         string(c.To),
			PreviousStatus: string(c.From),
			OccurredAt:     time.Now(),
		}); err != nil {
			logrus.WithError(err).WithField("agent_id", c.AgentID).Error("❌ erro ao publicar mudança de status")
		}
	}); err != nil {
		logrus.WithError(err).Fatal("❌ falha ao assinar o store de verificação")
	}

	// 4. UseCases
	leadsUC := usecase.NewLeadsUseCase(repos.leads)
	profileUC := usecase.NewProfileUseCase(repos.profiles)
	transactionsUC := usecase.NewTransactionsUseCase(repos.transactions)

	// 5. Handlers
	h := router.Handlers{
		Pages: handlers.NewPageHandler(
			store,
			usecase.NewDashboardUseCase(store, repos.leads, repos.transactions),
			leadsUC, profileUC, transactionsUC,
		),
		Auth: handlers.NewAuthHandler(
			usecase.NewAuthUseCase(repos.agents, repos.profiles, store, hasher, tokens),
			cfg.Environment == "production",
		),
		Verification: handlers.NewVerificationHandler(
			store, usecase.NewUploadDocumentUseCase(docs, store, producer), cfg.MaxUploadBytes,
		),
		Leads:        handlers.NewLeadHandler(leadsUC, usecase.NewSubmitLeadUseCase(repos.leads, store, producer)),
		Profile:      handlers.NewProfileHandler(profileUC),
		Transactions: handlers.NewTransactionHandler(transactionsUC),
		Admin: handlers.NewAdminHandler(
			usecase.NewReviewVerificationUseCase(repos.agents, store),
			usecase.NewAdvanceLeadUseCase(repos.leads, repos.transactions, producer),
		),
		Health: handlers.NewHealthHandler(db, broker, docs),
	}

	// 6. Workers
	go worker.NewReviewBacklogWorker(repos.statuses, middleware.SetPendingVerifications).Start(ctx)

	limiter := middleware.NewRateLimiter(10, time.Minute) // 10 req/min por IP nas rotas de auth
	go limiter.Cleanup(ctx.Done())

	// 7. Router
	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(h, router.Options{
			CORSOrigins: cfg.CORSOrigins,
			AdminAPIKey: cfg.AdminAPIKey,
			Sessions:    tokens,
			AuthLimiter: limiter,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"backend": cfg.DataBackend,
		}).Info("🔥 Server MapeoRewards rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("❌ servidor HTTP caiu")
		}
	}()

	<-ctx.Done()
	logrus.Info("⚠️ desligando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("❌ erro no shutdown")
	}
}

// memoryRepositories monta o backend em memória com o apporteur de demonstração.
func memoryRepositories(ctx context.Context, cfg config.Config, hasher *auth.BcryptHasher) (repositories, error) {
	accounts := memory.NewAccounts()
	leads := memory.NewLeadDirectory()
	leads.SetLatency(cfg.MockLatency)
	txs := memory.NewTransactionStore()

	hash, err := hasher.Hash(demoPassword)
	if err != nil {
		return repositories{}, err
	}
	if err := memory.SeedDemo(ctx, accounts, leads, txs, hash); err != nil {
		return repositories{}, err
	}
	logrus.WithField("email", memory.DemoEmail).Info("🧪 apporteur de demonstração criado")

	return repositories{
		agents:       accounts,
		statuses:     accounts,
		profiles:     accounts,
		leads:        leads,
		transactions: txs,
	}, nil
}

func startNotificationWorker(ctx context.Context, cfg config.Config, rabbit *queue.RabbitMQ, profiles entity.ProfileRepositoryInterface) {
	ch, err := rabbit.Channel()
	if err != nil {
		logrus.WithError(err).Error("❌ falha ao abrir canal do worker")
		return
	}

	sender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Pass, cfg.Mail.From)
	notifier := mail.NewNotifier(sender, profiles, cfg.AppURL+"/dashboard")

	go func() {
		defer ch.Close()
		if err := queue.NewWorker(ch, notifier).Start(ctx, queue.QueueName); err != nil {
			logrus.WithError(err).Error("❌ worker de notificações parou")
		}
	}()
}
