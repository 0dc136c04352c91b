package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/events"
	"github.com/pawmatch/pawmatch/pkg/logger"
	"github.com/pawmatch/pawmatch/pkg/telemetry"
	matchdomain "github.com/pawmatch/pawmatch/services/match/domain"
	domainevents "github.com/pawmatch/pawmatch/services/match/domain/events"
	"github.com/pawmatch/pawmatch/services/match/domain/models"
	"github.com/pawmatch/pawmatch/services/match/domain/repositories"
	domainsvcs "github.com/pawmatch/pawmatch/services/match/domain/services"
	swipeevents "github.com/pawmatch/pawmatch/services/swipe/domain/events"
	swipemodels "github.com/pawmatch/pawmatch/services/swipe/domain/models"
)

// decodeTransition maps the event's wire strings onto typed decisions at the
// boundary, so the reconciler only ever sees the swipe context's vocabulary.
// An empty previous means the triple had no effective decision.
func decodeTransition(evt swipeevents.SwipeRecordedEvent) (previous, next swipemodels.Decision, err error) {
	next, err = swipemodels.ParseDecision(evt.Decision)
	if err != nil {
		return "", "", fmt.Errorf("decision: %w", err)
	}
	previous = swipemodels.DecisionNone
	if evt.Previous != "" {
		previous, err = swipemodels.ParseDecision(evt.Previous)
		if err != nil {
			return "", "", fmt.Errorf("previous: %w", err)
		}
	}
	return previous, next, nil
}

// MatchService feeds effective-decision transitions into the reconciler and
// serves the derived match set. The reconciler decides formed/broken; this
// layer decodes events, publishes the outcome and records telemetry.
type MatchService struct {
	reconciler *domainsvcs.Reconciler
	reader     repositories.MatchReader
	roster     domainsvcs.RosterSource
	policy     models.Policy
	bus        *events.EventBus
	metrics    *telemetry.Metrics
	log        logger.Logger
}

// NewMatchService wires the reconciler with its collaborators. bus may be nil
// in tests; match events are then dropped after state is updated.
func NewMatchService(
	reconciler *domainsvcs.Reconciler,
	reader repositories.MatchReader,
	roster domainsvcs.RosterSource,
	policy models.Policy,
	bus *events.EventBus,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *MatchService {
	return &MatchService{
		reconciler: reconciler,
		reader:     reader,
		roster:     roster,
		policy:     policy,
		bus:        bus,
		metrics:    metrics,
		log:        log,
	}
}

// Matches derives the household's current match set from the effective likes,
// ordered by like count descending.
func (s *MatchService) Matches(ctx context.Context, householdID uuid.UUID) ([]*models.Match, error) {
	ok, err := s.roster.HouseholdExists(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("check household: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: household %s", matchdomain.ErrInvalidReference, householdID)
	}
	count, err := s.roster.MemberCount(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("member count: %w", err)
	}
	matches, err := s.reader.Matches(ctx, householdID, s.policy.RequiredLikes(count))
	if err != nil {
		return nil, fmt.Errorf("derive matches: %w", err)
	}
	return matches, nil
}

// HandleSwipeRecorded returns the worker handler for swipe.recorded events.
// It is idempotent against redelivery: the reconciler tracks the last ledger
// seq it applied per household and skips anything at or below it, so a
// replayed transition can neither move a count nor publish twice.
func (s *MatchService) HandleSwipeRecorded() func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt swipeevents.SwipeRecordedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			// Malformed payloads never become valid on retry.
			s.log.ErrorContext(ctx, "dropping malformed swipe.recorded event",
				"message_id", msg.UUID, "error", err)
			return nil
		}
		previous, next, err := decodeTransition(evt)
		if err != nil {
			s.log.ErrorContext(ctx, "dropping swipe.recorded event with bad decision",
				"message_id", msg.UUID, "error", err)
			return nil
		}

		event, err := s.reconciler.OnSwipeRecorded(ctx, evt.HouseholdID, evt.NameID, evt.Seq, previous, next)
		if err != nil {
			if errors.Is(err, matchdomain.ErrInvalidReference) {
				// The household or name was deleted between ledger append and
				// delivery; retrying cannot help.
				s.log.WarnContext(ctx, "swipe.recorded references unknown entity",
					"household_id", evt.HouseholdID, "name_id", evt.NameID)
				return nil
			}
			return err
		}
		if event == nil {
			return nil
		}

		switch event.Kind {
		case models.MatchFormed:
			s.metrics.CountMatchFormed(ctx)
		case models.MatchBroken:
			s.metrics.CountMatchBroken(ctx)
		}
		s.log.InfoContext(ctx, "match transition",
			"kind", string(event.Kind),
			"household_id", event.HouseholdID,
			"name_id", event.NameID,
			"likes_count", event.LikesCount,
		)

		if s.bus == nil {
			return nil
		}
		return s.publish(ctx, event)
	}
}

func (s *MatchService) publish(ctx context.Context, event *models.MatchEvent) error {
	var (
		topic   string
		payload []byte
		err     error
	)
	if event.Kind == models.MatchBroken {
		topic = domainevents.TopicMatchBroken
		payload, err = json.Marshal(domainevents.MatchBrokenEvent{
			EventID:     uuid.New(),
			Version:     1,
			HouseholdID: event.HouseholdID,
			NameID:      event.NameID,
			LikesCount:  event.LikesCount,
			OccurredAt:  time.Now().UTC(),
		})
	} else {
		topic = domainevents.TopicMatchFormed
		payload, err = json.Marshal(domainevents.MatchFormedEvent{
			EventID:     uuid.New(),
			Version:     1,
			HouseholdID: event.HouseholdID,
			NameID:      event.NameID,
			LikesCount:  event.LikesCount,
			OccurredAt:  time.Now().UTC(),
		})
	}
	if err != nil {
		return fmt.Errorf("marshal match event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_version", "1")
	if err := s.bus.Publish(ctx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
