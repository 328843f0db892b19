package sms

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"surv/models"
	"surv/tools"

	"github.com/jinzhu/gorm"
)

// sendTimeout bounds every outbound send so a slow provider degrades to a
// logged failure instead of blocking the webhook.
const sendTimeout = 10 * time.Second

const helpText = `SMS Commands:
• clock in - Start your day
• clock out - End your day
• omw #123 - On my way (notifies customer)
• start #123 - Start job timer
• done #123 - Complete job
• summary #123: [text] - Add job notes
• jobs - List today's jobs
• help - Show this message`

type Media struct {
	URL         string
	ContentType string
}

// Inbound is one received message, as handed over by the webhook.
type Inbound struct {
	From       string
	To         string
	Body       string
	MessageSID string
	Media      []Media
}

// Processor applies technician SMS commands to job state. All derived
// records for one inbound message (message log, timeline event, status
// update, time entry, note, photo) commit in a single transaction;
// replies go out best-effort after the commit.
//
// Now is overridable for tests and defaults to time.Now.
type Processor struct {
	DB     *gorm.DB
	Sender Sender
	Now    func() time.Time
}

// outbound is a reply queued during the transaction and sent after commit.
type outbound struct {
	to   string
	body string
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Processor) send(ctx context.Context, to string, body string) {
	if p.Sender == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := p.Sender.Send(ctx, to, body); err != nil {
		log.Printf("sms: send to %s failed: %v", to, err)
	}
}

// Handle processes one inbound message end to end.
func (p *Processor) Handle(ctx context.Context, in Inbound) error {
	tech, err := p.findTechnician(in.From)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			p.send(ctx, in.From, "Phone number not registered. Please contact your administrator.")
			return nil
		}
		return err
	}

	cmd := Classify(in.Body)
	now := p.now()

	msgLog := models.SMSMessage{
		MessageSID:  in.MessageSID,
		FromNumber:  in.From,
		ToNumber:    in.To,
		Body:        in.Body,
		Direction:   models.SMS_DIRECTION_INBOUND,
		Status:      models.SMS_STATUS_RECEIVED,
		EmployeeID:  tech.ID,
		CommandType: string(cmd.Type),
		ReceivedAt:  &now,
	}
	if len(in.Media) > 0 {
		msgLog.MediaURL = in.Media[0].URL
		msgLog.MediaType = in.Media[0].ContentType
	}

	var replies []outbound

	tx := p.DB.Begin()
	if tx.Error != nil {
		p.send(ctx, in.From, "Error processing your request. Please try again or contact support.")
		return tx.Error
	}

	err = p.apply(tx, tech, cmd, in, now, &msgLog, &replies)
	if err == nil {
		err = tx.Create(&msgLog).Error
	}
	if err == nil {
		err = tx.Commit().Error
	}
	if err != nil {
		tx.Rollback()
		log.Printf("sms: message %s from %s (%s): %v", in.MessageSID, in.From, cmd.Type, err)
		p.send(ctx, in.From, "Error processing your request. Please try again or contact support.")
		return err
	}

	for _, reply := range replies {
		p.send(ctx, reply.to, reply.body)
	}
	return nil
}

// findTechnician resolves the sender address to a known employee, trying
// the raw address first and the normalized form second.
func (p *Processor) findTechnician(from string) (*models.User, error) {
	var tech models.User
	err := p.DB.Where("phone = ?", from).First(&tech).Error
	if err == nil {
		return &tech, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	normalized, nerr := tools.NormalizePhone(from)
	if nerr != nil {
		return nil, err
	}
	if err := p.DB.Where("phone = ?", normalized).First(&tech).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

func (p *Processor) apply(tx *gorm.DB, tech *models.User, cmd Command, in Inbound, now time.Time, msgLog *models.SMSMessage, replies *[]outbound) error {
	switch cmd.Type {
	case CommandClockIn, CommandClockOut:
		entryType := models.TIME_ENTRY_CLOCK_IN
		verb := "in"
		if cmd.Type == CommandClockOut {
			entryType = models.TIME_ENTRY_CLOCK_OUT
			verb = "out"
		}
		entry := models.TimeEntry{
			EmployeeID: tech.ID,
			EntryType:  entryType,
			EntryTime:  now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		*replies = append(*replies, outbound{in.From, fmt.Sprintf("✓ Clocked %s at %s", verb, now.Format("03:04 PM"))})
		msgLog.CommandProcessed = true

	case CommandOnMyWay:
		job, err := FindJobByNumber(tx, cmd.JobNumber)
		if err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}
			*replies = append(*replies, outbound{in.From, fmt.Sprintf("Job #%s not found. Text 'jobs' to see your jobs.", cmd.JobNumber)})
			break
		}

		event := models.JobTimeline{
			JobID:      job.ID,
			EventType:  models.TIMELINE_EVENT_ON_MY_WAY,
			EventTime:  now,
			EmployeeID: tech.ID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		var customer models.Customer
		if err := tx.Where("id = ?", job.CustomerID).First(&customer).Error; err == nil && customer.Phone != "" {
			customerMsg := fmt.Sprintf("Good news! Your technician %s is on the way for your %s appointment.", tech.FirstName, job.Title)
			notification := models.SMSMessage{
				FromNumber: in.To,
				ToNumber:   customer.Phone,
				Body:       customerMsg,
				Direction:  models.SMS_DIRECTION_OUTBOUND,
				Status:     models.SMS_STATUS_SENT,
				JobID:      job.ID,
				CustomerID: customer.ID,
				SentAt:     &now,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
			*replies = append(*replies, outbound{customer.Phone, customerMsg})
		}

		*replies = append(*replies, outbound{in.From, fmt.Sprintf("✓ Customer notified for Job #%s. Travel timer started.", job.JobNumber)})
		msgLog.JobID = job.ID
		msgLog.CommandProcessed = true

	case CommandStartJob:
		job, err := FindJobByNumber(tx, cmd.JobNumber)
		if err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}
			*replies = append(*replies, outbound{in.From, fmt.Sprintf("Job #%s not found.", cmd.JobNumber)})
			break
		}
		if job.Status == models.JOB_STATUS_COMPLETED {
			*replies = append(*replies, outbound{in.From, fmt.Sprintf("Job #%s is already completed.", job.JobNumber)})
			break
		}
		if job.Status == models.JOB_STATUS_IN_PROGRESS {
			*replies = append(*replies, outbound{in.From, fmt.Sprintf("Job #%s is already started.", job.JobNumber)})
			break
		}

		onMyWay, err := latestEvent(tx, job.ID, models.TIMELINE_EVENT_ON_MY_WAY)
		if err != nil {
			return err
		}
		var travelTime *int
		if onMyWay != nil {
			if secs := int(now.Sub(onMyWay.EventTime).Seconds()); secs > 0 {
				travelTime = &secs
			}
		}

		event := models.JobTimeline{
			JobID:      job.ID,
			EventType:  models.TIMELINE_EVENT_STARTED,
			EventTime:  now,
			EmployeeID: tech.ID,
			TravelTime: travelTime,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
			"status":            models.JOB_STATUS_IN_PROGRESS,
			"actual_start_time": now,
		}).Error; err != nil {
			return err
		}

		travelMsg := ""
		if travelTime != nil {
			travelMsg = fmt.Sprintf(" (Travel time: %d min)", *travelTime/60)
		}
		*replies = append(*replies, outbound{in.From, fmt.Sprintf("✓ Started Job #%s%s. Job timer running.", job.JobNumber, travelMsg)})
		msgLog.JobID = job.ID
		msgLog.CommandProcessed = true

	case CommandFinishJob:
		job, err := FindJobByNumber(tx, cmd.JobNumber)
		if err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}
			*replies = append(*replies, outbound{in.From, fmt.Sprintf("Job #%s not found.", cmd.JobNumber)})
			break
		}
		if job.Status == models.JOB_STATUS_COMPLETED {
			*replies = append(*replies, outbound{in.From, fmt.Sprintf("Job #%s is already completed.", job.JobNumber)})
			break
		}

		started, err := latestEvent(tx, job.ID, models.TIMELINE_EVENT_STARTED)
		if err != nil {
			return err
		}
		var jobDuration *int
		if started != nil {
			if secs := int(now.Sub(started.EventTime).Seconds()); secs > 0 {
				jobDuration = &secs
			}
		}

		event := models.JobTimeline{
			JobID:       job.ID,
			EventType:   models.TIMELINE_EVENT_COMPLETED,
			EventTime:   now,
			EmployeeID:  tech.ID,
			JobDuration: jobDuration,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
			"status":          models.JOB_STATUS_COMPLETED,
			"actual_end_time": now,
		}).Error; err != nil {
			return err
		}

		durationMsg := ""
		if jobDuration != nil {
			durationMsg = fmt.Sprintf(" (Duration: %d min)", *jobDuration/60)
		}
		*replies = append(*replies, outbound{in.From, fmt.Sprintf("✓ Completed Job #%s%s. Great work!", job.JobNumber, durationMsg)})
		msgLog.JobID = job.ID
		msgLog.CommandProcessed = true

	case CommandJobSummary:
		job, err := FindJobByNumber(tx, cmd.JobNumber)
		if err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}
			*replies = append(*replies, outbound{in.From, fmt.Sprintf("Job #%s not found.", cmd.JobNumber)})
			break
		}

		note := models.JobNote{
			JobID:      job.ID,
			Note:       "TECHNICIAN SUMMARY: " + cmd.Summary,
			NoteType:   models.NOTE_TYPE_COMPLETION_SUMMARY,
			IsInternal: true,
			CreatedBy:  tech.ID,
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		*replies = append(*replies, outbound{in.From, fmt.Sprintf("✓ Summary added to Job #%s", job.JobNumber)})
		msgLog.JobID = job.ID
		msgLog.CommandProcessed = true

	case CommandListJobs:
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		var jobs []models.Job
		if err := tx.
			Where("assigned_to = ?", tech.ID).
			Where("scheduled_date >= ? AND scheduled_date < ?", today, today.AddDate(0, 0, 1)).
			Where("status IN (?)", []string{models.JOB_STATUS_SCHEDULED, models.JOB_STATUS_IN_PROGRESS}).
			Order("scheduled_start_time asc, job_number asc").
			Find(&jobs).Error; err != nil {
			return err
		}

		if len(jobs) == 0 {
			*replies = append(*replies, outbound{in.From, "No jobs scheduled for today."})
		} else {
			var b strings.Builder
			b.WriteString("Your jobs today:\n")
			for _, job := range jobs {
				startTime := "TBD"
				if job.ScheduledStartTime != nil {
					startTime = job.ScheduledStartTime.Format("03:04 PM")
				}
				fmt.Fprintf(&b, "• #%s: %s at %s\n", job.JobNumber, job.Title, startTime)
			}
			*replies = append(*replies, outbound{in.From, b.String()})
		}
		msgLog.CommandProcessed = true

	case CommandHelp:
		*replies = append(*replies, outbound{in.From, helpText})
		msgLog.CommandProcessed = true

	default:
		*replies = append(*replies, outbound{in.From, "Command not recognized. Text 'help' for commands."})
	}

	// MMS photos attach to whatever job the body references, independent
	// of the classified command.
	if len(in.Media) > 0 && in.Media[0].URL != "" {
		if err := p.attachMedia(tx, tech, in, now, replies); err != nil {
			return err
		}
	}

	return nil
}

func (p *Processor) attachMedia(tx *gorm.DB, tech *models.User, in Inbound, now time.Time, replies *[]outbound) error {
	token := ExtractJobToken(in.Body)
	if token == "" {
		*replies = append(*replies, outbound{in.From, "Photo received but couldn't be matched to a job. Include the job number and resend."})
		return nil
	}

	job, err := FindJobByNumber(tx, token)
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}
		*replies = append(*replies, outbound{in.From, "Photo received but couldn't be matched to a job. Include the job number and resend."})
		return nil
	}

	category := models.FILE_CATEGORY_BEFORE_PHOTO
	if strings.Contains(strings.ToLower(in.Body), "after") {
		category = models.FILE_CATEGORY_AFTER_PHOTO
	}

	fileType := in.Media[0].ContentType
	if fileType == "" {
		fileType = "image/jpeg"
	}

	photo := models.FileUpload{
		Filename:         fmt.Sprintf("mms_%s.jpg", in.MessageSID),
		OriginalFilename: fmt.Sprintf("Photo from %s", tech.FirstName),
		FilePath:         in.Media[0].URL,
		FileType:         fileType,
		EntityType:       "job",
		EntityID:         job.ID,
		Category:         category,
		UploadedBy:       tech.ID,
		UploadedAt:       &now,
	}
	if err := tx.Create(&photo).Error; err != nil {
		return err
	}

	*replies = append(*replies, outbound{in.From, fmt.Sprintf("✓ Photo saved to Job #%s", job.JobNumber)})
	return nil
}

// latestEvent finds the most recent timeline event of one type for a job,
// or nil when the job has none.
func latestEvent(tx *gorm.DB, jobID string, eventType string) (*models.JobTimeline, error) {
	var event models.JobTimeline
	err := tx.
		Where("job_id = ? AND event_type = ?", jobID, eventType).
		Order("event_time desc").
		First(&event).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}
