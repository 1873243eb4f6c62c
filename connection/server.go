package connection

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"famplan/controller/trigger"
	"famplan/push"
	"famplan/scheduler"
	"famplan/services"
	"famplan/store"
)

func StartServer() {
	config, err := LoadAppConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	firestoreClient, messagingClient, err := FBConnection(config.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase clients: %v", err)
	}

	documents := store.NewFirestore(firestoreClient)
	sender := push.NewFCM(messagingClient)

	fanout := &services.Fanout{Store: documents, Push: sender, BaseURL: config.BaseURL, Now: time.Now}
	stats := &services.Stats{Store: documents, Now: time.Now}
	activity := &services.ActivityLog{Store: documents}
	handlers := &services.Handlers{
		Store:    documents,
		Fanout:   fanout,
		Stats:    stats,
		Activity: activity,
		Now:      time.Now,
	}

	jobs := &scheduler.Jobs{Store: documents, Fanout: fanout, Now: time.Now}
	cronRunner, err := scheduler.Start(*config, jobs)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer cronRunner.Stop()

	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	trigger.TriggerController(router, handlers)

	router.Run()
}
