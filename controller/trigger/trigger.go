package trigger

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"famplan/dto"
	"famplan/middleware"
	"famplan/services"
)

// TriggerController registers the document-change endpoints the eventing
// platform delivers to. Handlers always answer 200 once a payload is
// accepted; the triggering write has already committed, so there is no
// one to surface an error to. Redelivery is the platform's call and the
// effects tolerate it.
func TriggerController(router *gin.Engine, handlers *services.Handlers) {
	routes := router.Group("/trigger", middleware.TriggerAuthMiddleware())
	{
		routes.POST("/task/created", func(c *gin.Context) {
			TaskCreated(c, handlers)
		})
		routes.POST("/task/updated", func(c *gin.Context) {
			TaskUpdated(c, handlers)
		})
		routes.POST("/comment/created", func(c *gin.Context) {
			CommentCreated(c, handlers)
		})
		routes.POST("/comment/deleted", func(c *gin.Context) {
			CommentDeleted(c, handlers)
		})
	}
}

func TaskCreated(c *gin.Context, handlers *services.Handlers) {
	var event dto.TaskCreatedEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	effects := handlers.TaskCreated(event.Task)
	runAndReply(c, effects)
}

func TaskUpdated(c *gin.Context, handlers *services.Handlers) {
	var event dto.TaskUpdatedEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}
	if event.Before == nil || event.After == nil {
		// Truncated deliveries happen; drop them without side effects.
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
		return
	}

	effects := handlers.TaskUpdated(*event.Before, *event.After)
	runAndReply(c, effects)
}

func CommentCreated(c *gin.Context, handlers *services.Handlers) {
	var event dto.CommentEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	effects, err := handlers.CommentCreated(c.Request.Context(), event.Comment)
	if err != nil {
		log.Printf("comment-created event abandoned: %v", err)
		c.JSON(http.StatusOK, gin.H{"message": "Event abandoned"})
		return
	}
	runAndReply(c, effects)
}

func CommentDeleted(c *gin.Context, handlers *services.Handlers) {
	var event dto.CommentEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	effects := handlers.CommentDeleted(event.Comment)
	runAndReply(c, effects)
}

func runAndReply(c *gin.Context, effects []services.Effect) {
	failed := services.RunEffects(c.Request.Context(), effects)
	c.JSON(http.StatusOK, gin.H{
		"effects": len(effects),
		"failed":  failed,
	})
}
