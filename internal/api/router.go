package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/hogar-app/hogar/internal/api/recovery"
	"github.com/hogar-app/hogar/internal/contextcache"
	"github.com/hogar-app/hogar/internal/llm"
	"github.com/hogar-app/hogar/internal/services"
	"github.com/hogar-app/hogar/internal/store"
)

// NewRouter creates a new HTTP router with all API routes.
func NewRouter(st store.Store, llmClient llm.Client, cache *contextcache.Cache, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Create domain services
	eventService := services.NewEventService(st)
	memberService := services.NewMemberService(st)
	shoppingService := services.NewShoppingService(st)
	chatService := services.NewChatService(st, llmClient, cache, log)

	// Create handlers
	healthHandler := NewHealthHandler()
	chatHandler := NewChatHandler(chatService)
	eventHandler := NewEventHandler(eventService)
	memberHandler := NewMemberHandler(memberService)
	shoppingHandler := NewShoppingHandler(shoppingService)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Chat endpoints
	router.HandleFunc("/api/chat", chatHandler.PostMessage).Methods("POST")
	router.HandleFunc("/api/chat/history", chatHandler.GetHistory).Methods("GET")
	router.HandleFunc("/api/chat/context", chatHandler.GetContext).Methods("GET")

	// Event endpoints
	router.HandleFunc("/api/events", eventHandler.CreateEvent).Methods("POST")
	router.HandleFunc("/api/events", eventHandler.ListEvents).Methods("GET")
	router.HandleFunc("/api/events/{eventId}", eventHandler.GetEvent).Methods("GET")
	router.HandleFunc("/api/events/{eventId}", eventHandler.UpdateEvent).Methods("PUT")
	router.HandleFunc("/api/events/{eventId}", eventHandler.DeleteEvent).Methods("DELETE")
	router.HandleFunc("/api/events/{eventId}/members", eventHandler.ListAttendees).Methods("GET")
	router.HandleFunc("/api/events/{eventId}/members/{memberId}", eventHandler.AttachMember).Methods("POST")

	// Member endpoints
	router.HandleFunc("/api/members", memberHandler.CreateMember).Methods("POST")
	router.HandleFunc("/api/members", memberHandler.ListMembers).Methods("GET")
	router.HandleFunc("/api/members/{memberId}", memberHandler.GetMember).Methods("GET")
	router.HandleFunc("/api/members/{memberId}", memberHandler.UpdateMember).Methods("PUT")
	router.HandleFunc("/api/members/{memberId}", memberHandler.DeleteMember).Methods("DELETE")

	// Shopping list endpoints
	router.HandleFunc("/api/shopping", shoppingHandler.CreateItem).Methods("POST")
	router.HandleFunc("/api/shopping", shoppingHandler.ListItems).Methods("GET")
	router.HandleFunc("/api/shopping/{itemId}/toggle", shoppingHandler.ToggleItem).Methods("PATCH")
	router.HandleFunc("/api/shopping/{itemId}", shoppingHandler.DeleteItem).Methods("DELETE")

	return router
}
