package httpapi

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docask/docask/pkg/generator"
	"github.com/docask/docask/pkg/retriever"
)

// Server exposes the loaded document over HTTP as an alternative to the
// interactive prompt.
type Server struct {
	retriever *retriever.Retriever
	generator generator.Generator
	topK      int
}

// New creates a server around an already-built retriever.
func New(r *retriever.Retriever, g generator.Generator, topK int) *Server {
	return &Server{retriever: r, generator: g, topK: topK}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "docask",
			"chunks":  s.retriever.Len(),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/ask", s.ask)
	}

	return router
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

type askRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type askResponse struct {
	Answer  string `json:"answer"`
	Context string `json:"context"`
}

func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.topK
	}

	docContext, err := s.retriever.Retrieve(req.Question, topK)
	if err != nil {
		log.Printf("Retrieval failed for %q: %v", req.Question, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve context"})
		return
	}
	if docContext == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No relevant context found"})
		return
	}

	answer, err := s.generator.Answer(req.Question, docContext)
	if err != nil {
		log.Printf("Generation failed for %q: %v", req.Question, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate answer"})
		return
	}

	c.JSON(http.StatusOK, askResponse{Answer: answer, Context: docContext})
}
