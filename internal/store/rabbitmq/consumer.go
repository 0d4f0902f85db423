package rabbitmq

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/suPer8Hu/supportbot/internal/bot"
	"github.com/suPer8Hu/supportbot/internal/jobs"
)

// Consumer drains the job queue with a fixed-size worker pool. Each job runs
// the engine synchronously; the reply and intent land on the job row. The
// consumer runs inside the API server process so async replies append to the
// same session store the sync path uses.
type Consumer struct {
	URL         string
	Queue       string
	Concurrency int

	Engine *bot.Engine
	Jobs   *jobs.Repo
}

func (c *Consumer) concurrency() int {
	if c.Concurrency <= 0 {
		return 2
	}
	if c.Concurrency > 50 {
		return 50
	}
	return c.Concurrency
}

// Run blocks until ctx is cancelled, then drains the in-flight jobs.
func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := declareQueues(ch, c.Queue); err != nil {
		return err
	}

	concurrency := c.concurrency()
	if err := ch.Qos(concurrency, 0, false); err != nil {
		return err
	}

	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	log.Printf("job consumer started, queue=%s concurrency=%d", c.Queue, concurrency)

	deliveries := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range deliveries {
				var m JobMessage
				if err := json.Unmarshal(d.Body, &m); err != nil || m.JobID == "" {
					log.Printf("worker=%d bad message: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				start := time.Now()
				if err := c.handleJob(ctx, m.JobID); err != nil {
					log.Printf("worker=%d job %s failed cost=%s err=%v", workerID, m.JobID, time.Since(start), err)
					_ = d.Nack(false, false)
					continue
				}
				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed job=%s err=%v", workerID, m.JobID, err)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("job consumer shutting down")
			close(deliveries)
			wg.Wait()
			return nil

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			deliveries <- d
		}
	}
}

func (c *Consumer) handleJob(ctx context.Context, jobID string) error {
	_ = c.Jobs.MarkRunning(ctx, jobID)

	j, err := c.Jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}

	// ProcessQuery never fails; a job only fails on repo errors.
	reply, intent := c.Engine.ProcessQuery(ctx, j.UserID, j.Prompt)

	if err := c.Jobs.MarkSucceeded(ctx, jobID, reply, string(intent)); err != nil {
		_ = c.Jobs.MarkFailed(ctx, jobID, err.Error())
		return err
	}
	return nil
}
