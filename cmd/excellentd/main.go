// Command excellentd is a minimal HTTP front end for the expression
// evaluator: POST a template and a variable tree, get back the rendered
// text and any errors as JSON. It is the one domain dependency pulled
// straight from the go-pugleaf reference repo that has a natural home
// here - a template-evaluation microservice built on gin, the same
// request/response JSON shape its own handlers use (c.ShouldBindJSON,
// c.JSON with gin.H).
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rapidpro/expressions"
	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/parser"
	"github.com/rapidpro/expressions/types"
)

var (
	addr = flag.String("addr", ":8080", "address to listen on")
)

// evaluateRequest is the POST /evaluate request body.
type evaluateRequest struct {
	Template         string                 `json:"template" binding:"required"`
	Variables        map[string]interface{} `json:"variables"`
	Zone             string                 `json:"zone"`
	MonthFirst       bool                   `json:"month_first"`
	URLEncode        bool                   `json:"url_encode"`
	ResolveAvailable bool                   `json:"resolve_available"`
	// Now, if set, pins the evaluation instant instead of the wall clock -
	// in the fixed millisecond-UTC JSON wire format (spec.md §6
	// "JSON-date round-trip"), so a caller can replay a template
	// deterministically against a past "now".
	Now string `json:"now"`
}

// evaluateResponse is the POST /evaluate response body.
type evaluateResponse struct {
	Output string   `json:"output"`
	Errors []string `json:"errors"`
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)

	router := gin.Default()
	router.POST("/evaluate", handleEvaluate)

	log.Printf("listening on %s", *addr)
	if err := router.Run(*addr); err != nil {
		log.Fatal(err)
	}
}

func handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zoneName := req.Zone
	if zoneName == "" {
		zoneName = "UTC"
	}
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone: " + err.Error()})
		return
	}

	style := types.DateStyleDayFirst
	if req.MonthFirst {
		style = types.DateStyleMonthFirst
	}

	now := time.Now()
	if req.Now != "" {
		v, err := types.ParseJSONDateTime(req.Now)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now, err = types.StdTime(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx := context.New(context.Config{Zone: loc, DateStyle: style, Now: now})
	for name, v := range req.Variables {
		cv, err := context.FromInterface(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.Set(name, cv)
	}

	var opts []excellent.Option
	if req.URLEncode {
		opts = append(opts, excellent.WithURLEncode())
	}
	if req.ResolveAvailable {
		opts = append(opts, excellent.WithStrategy(parser.ResolveAvailable))
	}

	output, errs := excellent.EvaluateTemplate(req.Template, ctx, opts...)
	c.JSON(http.StatusOK, evaluateResponse{Output: output, Errors: errs.Strings()})
}
