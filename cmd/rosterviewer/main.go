package main

import (
	"flag"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"k8s.io/test-infra/prow/interrupts"
	"k8s.io/test-infra/prow/pjutil"

	"github.com/iambami/community/internal/pkg/roster"
	"github.com/iambami/community/pkg/rosterclient"
)

const (
	// listRosterSuccessMessage returns on success.
	listRosterSuccessMessage = "List all maintainers success."
	// pickTriagerSuccessMessage returns on success.
	pickTriagerSuccessMessage = "Pick a triager success."
)

type options struct {
	port       int
	rosterPath string
}

func gatherOptions() options {
	o := options{}
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.IntVar(&o.port, "port", 80, "Port to listen on.")
	fs.StringVar(&o.rosterPath, "roster-path", "", "Path to the maintainer roster file.")
	_ = fs.Parse(os.Args[1:])
	return o
}

func main() {
	o := gatherOptions()
	if o.rosterPath == "" {
		logrus.Fatal("Invalid options: --roster-path must be set.")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	log := logrus.StandardLogger().WithField("component", "rosterviewer")

	agent := &roster.Agent{}
	if err := agent.Start(o.rosterPath); err != nil {
		log.WithError(err).Fatalf("Error loading roster from %q.", o.rosterPath)
	}

	health := pjutil.NewHealth()
	health.ServeReady()

	router := gin.Default()
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "community-roster")
	})
	router.GET("/roster", func(c *gin.Context) {
		records := agent.Roster()
		maintainers := make([]rosterclient.Maintainer, 0, len(records))
		for _, record := range records {
			maintainers = append(maintainers, rosterclient.Maintainer(record))
		}

		c.JSON(http.StatusOK, rosterclient.RosterResponse{
			Data:    maintainers,
			Message: listRosterSuccessMessage,
		})
	})
	router.GET("/roster/triager", func(c *gin.Context) {
		triager, err := roster.PickTriager(agent.Roster())
		if err != nil {
			c.Status(http.StatusNotFound)
			log.WithError(err).Error("Failed to pick a triager.")
			return
		}

		c.JSON(http.StatusOK, rosterclient.TriagerResponse{
			Data:    triager,
			Message: pickTriagerSuccessMessage,
		})
	})

	httpServer := &http.Server{Addr: ":" + strconv.Itoa(o.port), Handler: router}

	defer interrupts.WaitForGracefulShutdown()
	interrupts.ListenAndServe(httpServer, 5*time.Second)
}
