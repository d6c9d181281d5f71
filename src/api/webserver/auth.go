package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/trailsight/trailsight/src/api/data"
)

// Failed attempts per client inside the redis window before lockout.
const maxAuthFailures = 5

type Auth struct {
	rdb        *redis.Client
	jwtSecret  []byte
	apiKeyHash string
}

func NewAuth(rdb *redis.Client, secret []byte, apiKeyHash string) Auth {
	return Auth{rdb: rdb, jwtSecret: secret, apiKeyHash: apiKeyHash}
}

func (a Auth) Token(c *gin.Context) {
	var req struct {
		ClientID string `json:"client_id" binding:"required"`
		APIKey   string `json:"api_key"   binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if fails, err := data.RecordAuthFailure(c, a.rdb, req.ClientID); err == nil && fails > maxAuthFailures {
		c.JSON(http.StatusTooManyRequests, gin.H{"err": "too many failed attempts"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.apiKeyHash), []byte(req.APIKey)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid credentials"})
		return
	}
	data.ClearAuthFailures(c, a.rdb, req.ClientID)

	token, err := issueJWT(req.ClientID, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
