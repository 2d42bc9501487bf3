package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/RaiAraujo30/Complete-Physical-Store/controllers"
)

func TestRoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	limit := func(c *gin.Context) { c.Next() }

	RegisterStoreRoutes(r, controllers.NewStoreController(nil), limit)
	RegisterDeliveryCriteriaRoutes(r, controllers.NewDeliveryCriteriaController(nil))

	got := map[string]int{}
	for _, ri := range r.Routes() {
		got[ri.Method+" "+ri.Path]++
	}
	for _, want := range []string{
		http.MethodGet + " /store",
		http.MethodPost + " /store",
		http.MethodGet + " /store/:id",
		http.MethodPut + " /store/:id",
		http.MethodDelete + " /store/:id",
		http.MethodGet + " /store/state/:state",
		http.MethodGet + " /store/shipping/:cep",
		http.MethodGet + " /deliveryCriteria",
		http.MethodPost + " /deliveryCriteria",
		http.MethodDelete + " /deliveryCriteria/:id",
	} {
		assert.Equal(t, 1, got[want], want)
	}
	assert.Len(t, got, 10)
}
