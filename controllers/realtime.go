package controllers

import (
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"gridlock/api/errs"
	"gridlock/realtime"
	"gridlock/services"
)

// ProjectEvents upgrades the request and keeps the connection in the
// project's room until the client goes away. Clients only listen; reads are
// drained to detect disconnects.
func ProjectEvents(c *gin.Context) {
	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		c.Error(err)
		return
	}

	realtime.Main.Join(projectID, conn)
	defer realtime.Main.Leave(projectID, conn)

	for {
		if _, _, err := conn.Read(c.Request.Context()); err != nil {
			return
		}
	}
}
