package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/swapnil-jadhav-official/anamico-india-sub001/configs"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/cache"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/gateway"
	apihttp "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/http"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/http/middleware"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/kafka"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/queue"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/repo"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/logging"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	logger.Info("commerce-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq notification producer
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	notifier, err := queue.NewNotificationProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// payment gateway: real processor in prod, in-memory mock elsewhere
	var gw usecase.PaymentGateway
	if cfg.Gateway.Mode == "http" {
		gw = gateway.NewHTTPGateway(cfg.Gateway.BaseURL, cfg.Gateway.KeyID, cfg.Gateway.Secret, cfg.Gateway.Currency, cfg.Gateway.Timeout)
	} else {
		gw = gateway.NewMockGateway(cfg.Gateway.Currency)
	}

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	regRepo := repo.NewMySQLRegistrationRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisCache(rdb, cfg.Cache.TTL)

	// use cases
	createUC := usecase.NewCreateOrder(orderRepo, idem, cfg.Policy.TaxRateBps)
	initiateUC := usecase.NewInitiatePayment(orderRepo, gw, cfg.Policy.AdvanceBps)
	recordUC := usecase.NewRecordPayment(orderRepo, gw, statusCache)
	adminUC := usecase.NewAdminAction(orderRepo, notifier, statusCache)
	regsUC := usecase.NewRegistrations(regRepo, gw, notifier, cfg.Policy.TaxRateBps, cfg.Policy.ExpiringSoonDays)

	// gateway settlement events drive the same record-payment path as
	// client-reported confirmations
	if len(cfg.Kafka.Brokers) > 0 {
		if err := setupSettlementListener(cfg, recordUC, regsUC); err != nil {
			return nil, nil, err
		}
	}

	// handlers + router + middleware
	oh := apihttp.NewOrderHandler(createUC, initiateUC, recordUC, orderRepo)
	rh := apihttp.NewRegistrationHandler(regsUC)
	ah := apihttp.NewAdminHandler(adminUC)
	th := apihttp.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	router := apihttp.NewRouter(oh, rh, ah, th, authz)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		_ = ch.Close()
		_ = conn.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupSettlementListener(cfg configs.Config, recordUC *usecase.RecordPayment, regsUC *usecase.Registrations) error {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return err
	}

	h := kafka.NewSettlementHandler(recordUC, regsUC)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.SettlementTopic}, h.Handle)
	consumer.Logger = logging.New("kafka-settlements")

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			logging.New("kafka-settlements").Error("consumer stopped", "err", err)
		}
	}()
	return nil
}
