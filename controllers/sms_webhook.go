package controllers

import (
	"log"
	"net/http"
	"strconv"

	dbpkg "surv/db"
	"surv/sms"

	"github.com/gin-gonic/gin"
)

var smsSender sms.Sender

// SetSMSSender injects the outbound SMS collaborator used for replies
// and customer notifications.
func SetSMSSender(sender sms.Sender) {
	smsSender = sender
}

// twimlEmpty acknowledges a Twilio webhook without an inline reply; our
// replies go out through the Messages API instead.
const twimlEmpty = `<?xml version="1.0" encoding="UTF-8"?>
<Response></Response>`

// POST /api/sms/webhook
// Twilio posts here when a technician texts in. The sender is identified
// by phone number only; this route carries no JWT.
func SMSWebhook(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	in := sms.Inbound{
		From:       c.PostForm("From"),
		To:         c.PostForm("To"),
		Body:       c.PostForm("Body"),
		MessageSID: c.PostForm("MessageSid"),
	}
	if in.From == "" || in.MessageSID == "" {
		RespondError(c, "From and MessageSid are required", http.StatusBadRequest)
		return
	}

	numMedia, _ := strconv.Atoi(c.DefaultPostForm("NumMedia", "0"))
	if numMedia > 0 {
		in.Media = append(in.Media, sms.Media{
			URL:         c.PostForm("MediaUrl0"),
			ContentType: c.PostForm("MediaContentType0"),
		})
	}

	processor := sms.Processor{DB: db, Sender: smsSender}
	if err := processor.Handle(c.Request.Context(), in); err != nil {
		// the sender already got an apology reply; Twilio still gets a 200
		// so it does not retry the same message
		log.Printf("sms webhook: %v", err)
	}

	c.Data(http.StatusOK, "application/xml", []byte(twimlEmpty))
}
