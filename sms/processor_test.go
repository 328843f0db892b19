package sms

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"surv/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	techPhone     = "+15550001111"
	customerPhone = "+15550002222"
	twilioNumber  = "+15550009999"
)

type sentMessage struct {
	to   string
	body string
}

type fakeSender struct {
	sent []sentMessage
}

func (s *fakeSender) Send(ctx context.Context, to string, body string) error {
	s.sent = append(s.sent, sentMessage{to, body})
	return nil
}

type failingSender struct{}

func (failingSender) Send(ctx context.Context, to string, body string) error {
	return errors.New("provider unavailable")
}

func (s *fakeSender) repliesTo(number string) []string {
	var bodies []string
	for _, msg := range s.sent {
		if msg.to == number {
			bodies = append(bodies, msg.body)
		}
	}
	return bodies
}

type fixture struct {
	db     *gorm.DB
	sender *fakeSender
	proc   *Processor
	clock  time.Time
	tech   models.User
	job    models.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// each pooled connection would otherwise get its own :memory: database
	db.DB().SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Job{},
		&models.JobTimeline{},
		&models.SMSMessage{},
		&models.TimeEntry{},
		&models.JobNote{},
		&models.FileUpload{},
	).Error)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:     db,
		sender: &fakeSender{},
		clock:  time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
	f.proc = &Processor{
		DB:     db,
		Sender: f.sender,
		Now:    func() time.Time { return f.clock },
	}

	f.tech = models.User{
		Email:     "sam@surv.test",
		Password:  "hashed",
		FirstName: "Sam",
		LastName:  "Rios",
		Phone:     techPhone,
		Role:      models.USER_ROLE_TECHNICIAN,
	}
	require.NoError(t, db.Create(&f.tech).Error)

	customer := models.Customer{FirstName: "Pat", LastName: "Doyle", Phone: customerPhone}
	require.NoError(t, db.Create(&customer).Error)

	f.job = models.Job{
		JobNumber:     "JOB-00100",
		CustomerID:    customer.ID,
		Title:         "Pool cleaning",
		Status:        models.JOB_STATUS_SCHEDULED,
		Priority:      models.JOB_PRIORITY_NORMAL,
		ScheduledDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		AssignedTo:    f.tech.ID,
	}
	require.NoError(t, db.Create(&f.job).Error)
	return f
}

func (f *fixture) handle(t *testing.T, body string) {
	t.Helper()
	require.NoError(t, f.proc.Handle(context.Background(), Inbound{
		From:       techPhone,
		To:         twilioNumber,
		Body:       body,
		MessageSID: "SM" + strings.ReplaceAll(body, " ", "_"),
	}))
}

func (f *fixture) reloadJob(t *testing.T) models.Job {
	t.Helper()
	var job models.Job
	require.NoError(t, f.db.Where("id = ?", f.job.ID).First(&job).Error)
	return job
}

func TestHandleJobLifecycle(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "omw 100")
	replies := f.sender.repliesTo(techPhone)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "Customer notified for Job #JOB-00100")

	customerReplies := f.sender.repliesTo(customerPhone)
	require.Len(t, customerReplies, 1)
	assert.Contains(t, customerReplies[0], "Sam is on the way")
	assert.Contains(t, customerReplies[0], "Pool cleaning")
	assert.Equal(t, models.JOB_STATUS_SCHEDULED, f.reloadJob(t).Status)

	f.clock = f.clock.Add(10 * time.Minute)
	f.handle(t, "start 100")

	job := f.reloadJob(t)
	assert.Equal(t, models.JOB_STATUS_IN_PROGRESS, job.Status)
	require.NotNil(t, job.ActualStartTime)

	var started models.JobTimeline
	require.NoError(t, f.db.Where("job_id = ? AND event_type = ?", f.job.ID, models.TIMELINE_EVENT_STARTED).First(&started).Error)
	require.NotNil(t, started.TravelTime)
	assert.Equal(t, 600, *started.TravelTime)

	replies = f.sender.repliesTo(techPhone)
	assert.Contains(t, replies[len(replies)-1], "Started Job #JOB-00100 (Travel time: 10 min)")

	f.clock = f.clock.Add(30 * time.Minute)
	f.handle(t, "done 100")

	job = f.reloadJob(t)
	assert.Equal(t, models.JOB_STATUS_COMPLETED, job.Status)
	require.NotNil(t, job.ActualEndTime)

	var completed models.JobTimeline
	require.NoError(t, f.db.Where("job_id = ? AND event_type = ?", f.job.ID, models.TIMELINE_EVENT_COMPLETED).First(&completed).Error)
	require.NotNil(t, completed.JobDuration)
	assert.Equal(t, 1800, *completed.JobDuration)

	replies = f.sender.repliesTo(techPhone)
	assert.Contains(t, replies[len(replies)-1], "Completed Job #JOB-00100 (Duration: 30 min)")

	var msgCount int
	require.NoError(t, f.db.Model(&models.SMSMessage{}).
		Where("direction = ?", models.SMS_DIRECTION_INBOUND).Count(&msgCount).Error)
	assert.Equal(t, 3, msgCount)
}

func TestHandleStartWithoutOnMyWayHasNoTravelTime(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "start 100")

	var started models.JobTimeline
	require.NoError(t, f.db.Where("job_id = ? AND event_type = ?", f.job.ID, models.TIMELINE_EVENT_STARTED).First(&started).Error)
	assert.Nil(t, started.TravelTime)

	replies := f.sender.repliesTo(techPhone)
	assert.Equal(t, "✓ Started Job #JOB-00100. Job timer running.", replies[0])
}

func TestHandleRejectsDoubleStart(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "start 100")
	f.handle(t, "start 100")

	replies := f.sender.repliesTo(techPhone)
	require.Len(t, replies, 2)
	assert.Equal(t, "Job #JOB-00100 is already started.", replies[1])

	var eventCount int
	require.NoError(t, f.db.Model(&models.JobTimeline{}).
		Where("event_type = ?", models.TIMELINE_EVENT_STARTED).Count(&eventCount).Error)
	assert.Equal(t, 1, eventCount)
}

func TestHandleRejectsFinishAfterCompleted(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "start 100")
	f.handle(t, "done 100")
	f.handle(t, "done 100")

	replies := f.sender.repliesTo(techPhone)
	require.Len(t, replies, 3)
	assert.Equal(t, "Job #JOB-00100 is already completed.", replies[2])
}

func TestHandleLooseJobNumberMatch(t *testing.T) {
	f := newFixture(t)

	// bare digits, full number, and lowercase all resolve the same job
	for _, token := range []string{"100", "JOB-00100", "job-00100"} {
		f.handle(t, "omw "+token)
	}

	var count int
	require.NoError(t, f.db.Model(&models.JobTimeline{}).
		Where("job_id = ? AND event_type = ?", f.job.ID, models.TIMELINE_EVENT_ON_MY_WAY).Count(&count).Error)
	assert.Equal(t, 3, count)
}

func TestHandleUnknownJobNumber(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "start 999")

	replies := f.sender.repliesTo(techPhone)
	require.Len(t, replies, 1)
	assert.Equal(t, "Job #999 not found.", replies[0])
	assert.Equal(t, models.JOB_STATUS_SCHEDULED, f.reloadJob(t).Status)
}

func TestHandleUnregisteredSender(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.proc.Handle(context.Background(), Inbound{
		From: "+15557770000",
		To:   twilioNumber,
		Body: "start 100",
	}))

	replies := f.sender.repliesTo("+15557770000")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "not registered")

	var msgCount int
	require.NoError(t, f.db.Model(&models.SMSMessage{}).Count(&msgCount).Error)
	assert.Zero(t, msgCount)
	assert.Equal(t, models.JOB_STATUS_SCHEDULED, f.reloadJob(t).Status)
}

func TestHandleSendFailureStillCommitsState(t *testing.T) {
	f := newFixture(t)
	f.proc.Sender = failingSender{}

	// reply delivery is best-effort; a dead provider must not undo the
	// committed state or surface as a handler error
	require.NoError(t, f.proc.Handle(context.Background(), Inbound{
		From:       techPhone,
		To:         twilioNumber,
		Body:       "start 100",
		MessageSID: "SMdown",
	}))

	assert.Equal(t, models.JOB_STATUS_IN_PROGRESS, f.reloadJob(t).Status)

	var events int
	require.NoError(t, f.db.Model(&models.JobTimeline{}).
		Where("event_type = ?", models.TIMELINE_EVENT_STARTED).Count(&events).Error)
	assert.Equal(t, 1, events)

	var msgs int
	require.NoError(t, f.db.Model(&models.SMSMessage{}).Count(&msgs).Error)
	assert.Equal(t, 1, msgs)
}

func TestHandleFailedTransactionRollsBackAndApologizes(t *testing.T) {
	f := newFixture(t)

	// sink the message-log insert so the transaction fails after the
	// timeline event and status update were staged
	require.NoError(t, f.db.DropTable(&models.SMSMessage{}).Error)

	err := f.proc.Handle(context.Background(), Inbound{
		From:       techPhone,
		To:         twilioNumber,
		Body:       "start 100",
		MessageSID: "SMfail",
	})
	require.Error(t, err)

	assert.Equal(t, models.JOB_STATUS_SCHEDULED, f.reloadJob(t).Status)

	var events int
	require.NoError(t, f.db.Model(&models.JobTimeline{}).Count(&events).Error)
	assert.Zero(t, events)

	replies := f.sender.repliesTo(techPhone)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "Error processing your request")
}

func TestHandleClockInAndOut(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "clock in")
	f.clock = f.clock.Add(8 * time.Hour)
	f.handle(t, "clock out")

	var entries []models.TimeEntry
	require.NoError(t, f.db.Where("employee_id = ?", f.tech.ID).Order("entry_time asc").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, models.TIME_ENTRY_CLOCK_IN, entries[0].EntryType)
	assert.Equal(t, models.TIME_ENTRY_CLOCK_OUT, entries[1].EntryType)

	replies := f.sender.repliesTo(techPhone)
	assert.Equal(t, "✓ Clocked in at 09:00 AM", replies[0])
	assert.Equal(t, "✓ Clocked out at 05:00 PM", replies[1])
}

func TestHandleListJobs(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "jobs")
	replies := f.sender.repliesTo(techPhone)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "Your jobs today:")
	assert.Contains(t, replies[0], "#JOB-00100: Pool cleaning at TBD")

	// completed jobs drop off the list
	f.handle(t, "start 100")
	f.handle(t, "done 100")
	f.handle(t, "jobs")

	replies = f.sender.repliesTo(techPhone)
	assert.Equal(t, "No jobs scheduled for today.", replies[len(replies)-1])
}

func TestHandleSummary(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "summary 100: replaced the filter")

	var note models.JobNote
	require.NoError(t, f.db.Where("job_id = ?", f.job.ID).First(&note).Error)
	assert.Equal(t, "TECHNICIAN SUMMARY: replaced the filter", note.Note)
	assert.Equal(t, models.NOTE_TYPE_COMPLETION_SUMMARY, note.NoteType)
	assert.True(t, note.IsInternal)

	replies := f.sender.repliesTo(techPhone)
	assert.Equal(t, "✓ Summary added to Job #JOB-00100", replies[0])
}

func TestHandleHelpAndUnknown(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "help")
	f.handle(t, "what is going on")

	replies := f.sender.repliesTo(techPhone)
	require.Len(t, replies, 2)
	assert.Contains(t, replies[0], "SMS Commands:")
	assert.Equal(t, "Command not recognized. Text 'help' for commands.", replies[1])
}

func TestHandleMediaAttachesPhoto(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.proc.Handle(context.Background(), Inbound{
		From:       techPhone,
		To:         twilioNumber,
		Body:       "after 100",
		MessageSID: "SMmedia1",
		Media:      []Media{{URL: "https://api.twilio.test/media/1", ContentType: "image/jpeg"}},
	}))

	var photo models.FileUpload
	require.NoError(t, f.db.Where("entity_id = ?", f.job.ID).First(&photo).Error)
	assert.Equal(t, models.FILE_CATEGORY_AFTER_PHOTO, photo.Category)
	assert.Equal(t, "https://api.twilio.test/media/1", photo.FilePath)
	assert.Equal(t, f.tech.ID, photo.UploadedBy)

	replies := f.sender.repliesTo(techPhone)
	assert.Contains(t, replies[len(replies)-1], "Photo saved to Job #JOB-00100")
}

func TestHandleMediaWithoutJobNumberWarns(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.proc.Handle(context.Background(), Inbound{
		From:       techPhone,
		To:         twilioNumber,
		Body:       "here is the photo",
		MessageSID: "SMmedia2",
		Media:      []Media{{URL: "https://api.twilio.test/media/2", ContentType: "image/jpeg"}},
	}))

	var count int
	require.NoError(t, f.db.Model(&models.FileUpload{}).Count(&count).Error)
	assert.Zero(t, count)

	replies := f.sender.repliesTo(techPhone)
	assert.Contains(t, replies[len(replies)-1], "couldn't be matched to a job")
}

func TestFindTechnicianNormalizesSender(t *testing.T) {
	f := newFixture(t)

	// Twilio may hand over the number without the plus
	require.NoError(t, f.proc.Handle(context.Background(), Inbound{
		From: "15550001111",
		To:   twilioNumber,
		Body: "clock in",
	}))

	var entry models.TimeEntry
	require.NoError(t, f.db.Where("employee_id = ?", f.tech.ID).First(&entry).Error)
	assert.Equal(t, models.TIME_ENTRY_CLOCK_IN, entry.EntryType)
}
