package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itsm-a-dev/BetTrackingBot/models"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/metrics"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/slip"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/tracker"
)

var (
	appCfg *Config
	engine *tracker.Engine
)

const maxSlipUpload = 5 << 20 // 5MB

func setupRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		metrics.Default().Registry(), promhttp.HandlerOpts{})))

	r.POST("/login", loginHandler)

	authed := r.Group("/")
	authed.Use(jwtAuthMiddleware())
	{
		authed.POST("/slips", slipUploadHandler)
		authed.GET("/bets", listBetsHandler)
		authed.GET("/bets/:id", getBetHandler)
		authed.DELETE("/bets/:id", deleteBetHandler)
		authed.POST("/bets", createManualBetHandler)
	}
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(appCfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok {
				c.Set("username", sub)
			}
		}
		c.Next()
	}
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !authenticateOperator(appCfg, req.Username, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := issueToken(appCfg.JWTSecret, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// slipUploadHandler accepts a bet slip screenshot and runs the full
// intake pipeline on it synchronously.
func slipUploadHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > maxSlipUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 5MB limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	storePath := ""
	if appCfg.UploadDir != "" {
		if err := os.MkdirAll(appCfg.UploadDir, 0o755); err == nil {
			name := time.Now().Format("20060102-150405") + "-" + filepath.Base(file.Filename)
			storePath = filepath.Join(appCfg.UploadDir, name)
			if err := os.WriteFile(storePath, data, 0o644); err != nil {
				log.Printf("upload save warning: %v", err)
				storePath = ""
			}
		}
	}

	bet, parsed, err := processSlip(c.Request.Context(), data, file.Filename, storePath, "http")
	if err != nil {
		status := http.StatusUnprocessableEntity
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"bet_id":     bet.ID,
		"bet_type":   bet.BetType,
		"book":       parsed.Book,
		"legs":       len(bet.Legs),
		"confidence": slip.Confidence(parsed),
	})
}

func listBetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bets": engine.List()})
}

func getBetHandler(c *gin.Context) {
	bet, ok := engine.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "bet not found"})
		return
	}
	c.JSON(http.StatusOK, bet)
}

func deleteBetHandler(c *gin.Context) {
	if !engine.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "bet not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// createManualBetHandler registers a bet without a slip image, for slips
// the OCR pipeline cannot read.
func createManualBetHandler(c *gin.Context) {
	var req struct {
		BetType models.BetType `json:"bet_type"`
		League  string         `json:"league"`
		Odds    *int           `json:"odds"`
		Stake   *float64       `json:"stake"`
		Payout  *float64       `json:"payout"`
		Book    string         `json:"book"`
		Legs    models.LegList `json:"legs"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Legs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one leg is required"})
		return
	}
	betType := req.BetType
	if betType == "" {
		betType = models.BetSingle
		if len(req.Legs) > 1 {
			betType = models.BetParlay
		}
	}
	for _, leg := range req.Legs {
		if leg.Result == "" {
			leg.Result = models.ResultPending
		}
	}
	bet := &models.TrackedBet{
		ID:      uuid.NewString(),
		BetType: betType,
		League:  req.League,
		Odds:    req.Odds,
		Stake:   req.Stake,
		Payout:  req.Payout,
		Book:    req.Book,
		Legs:    req.Legs,
	}
	if err := announceBet(c.Request.Context(), bet); err != nil {
		log.Printf("announce warning for manual bet %s: %v", bet.ID, err)
	}
	engine.Add(bet)
	metrics.Default().RecordSlip("manual", "ok", -1)
	c.JSON(http.StatusCreated, bet)
}
