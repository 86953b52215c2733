package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rabbitmq/amqp091-go"

	"github.com/swapnil-jadhav-official/anamico-india-sub001/configs"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/queue"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/logging"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

// The notification worker drains the notification queue and hands events
// to the mailer. It is deliberately separate from the API process: a slow
// or failing mailer must never back-pressure order processing.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	l := logging.Init("notification-worker", "./logs/worker.log")

	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		log.Fatal(err)
	}
	defer ch.Close()

	// declares exchange/queue/bindings if the API hasn't yet
	if _, err := queue.NewNotificationProducer(ch); err != nil {
		log.Fatal(err)
	}

	h := queue.NewNotificationHandler(nil) // mailer wired when the email service lands
	router := queue.NewRouter(ch, queue.WithPrefetch(20))
	router.Register(queue.NotificationQueue, queue.JSONHandler[usecase.NotificationEvent]{HandleFunc: h.Handle})
	if err := router.Start(); err != nil {
		log.Fatal(err)
	}

	l.Info("notification-worker started", "queue", queue.NotificationQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("notification-worker shutting down")
}
