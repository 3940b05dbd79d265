package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/taskboard/modules/workitems"
	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/pkg/configuration"
	"github.com/iota-uz/taskboard/pkg/eventbus"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		logger.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	bus := eventbus.NewEventPublisher(logger)
	module := workitems.NewModule(conf, pool, bus)

	if conf.RunMigrations {
		if err := module.ApplyMigrations(ctx); err != nil {
			logger.WithError(err).Fatal("failed to apply migrations")
		}
		logger.Info("migrations applied")
	}

	bus.Subscribe(func(event *workitem.CreatedEvent) {
		logger.WithField("work_item_id", event.Result.ID).
			WithField("actor_id", event.ActorID).
			Info("work item created")
	})
	bus.Subscribe(func(event *workitem.UpdatedEvent) {
		logger.WithField("work_item_id", event.Result.ID).
			WithField("actor_id", event.ActorID).
			Info("work item updated")
	})
	bus.Subscribe(func(event *workitem.DeletedEvent) {
		logger.WithField("work_item_id", event.Result.ID).
			WithField("actor_id", event.ActorID).
			Info("work item deleted")
	})

	logger.WithField("module", module.Name()).
		WithField("env", conf.GoAppEnvironment).
		Info("taskboard engine ready")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	conf.Unload()
}
