package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iurnickita/entitlementsupport/internal/entitlementclient"
	"github.com/iurnickita/entitlementsupport/internal/journal"
	"github.com/iurnickita/entitlementsupport/internal/metrics"
	"github.com/iurnickita/entitlementsupport/internal/model"
	"github.com/iurnickita/entitlementsupport/internal/state"
	"github.com/iurnickita/entitlementsupport/internal/store"
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidUUID      = errors.New("invalid uuid")
	ErrInvalidReason    = errors.New("invalid reason")
	ErrInvalidMode      = errors.New("invalid mode")
	ErrEmptyResponse    = errors.New("empty response")
)

// Синхронные действия. Открытие окна нумерует сессию окна, закрытие - нет

func (c *Creators) OpenEntitlementCreationModal() state.Action {
	return state.OpenCreationModal{Session: c.modal.Add(1)}
}

func CloseEntitlementCreationModal() state.Action {
	return state.CloseModal{}
}

func (c *Creators) OpenEntitlementReissueModal(entitlement model.Entitlement) state.Action {
	return state.OpenReissueModal{Session: c.modal.Add(1), Entitlement: entitlement}
}

func CloseEntitlementReissueModal() state.Action {
	return state.CloseModal{}
}

// Reissue is the modal's update form. User addresses the request, SupportUser
// goes to the journal, Session is the modal session the form was shown in.
type Reissue struct {
	Session         uint64
	Reason          string
	EntitlementUUID string
	Comments        string
	User            string
	SupportUser     string
}

func (r Reissue) Validate() error {
	if r.EntitlementUUID == "" || r.User == "" {
		return ErrInsufficientData
	}
	if _, err := uuid.Parse(r.EntitlementUUID); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, r.EntitlementUUID)
	}
	if !model.ValidReason(r.Reason) {
		return fmt.Errorf("%w: %q", ErrInvalidReason, r.Reason)
	}
	return nil
}

type Creation struct {
	Session     uint64
	CourseUUID  string
	User        string
	Mode        string
	Reason      string
	Comments    string
	SupportUser string
}

func (c Creation) Validate() error {
	if c.CourseUUID == "" || c.User == "" {
		return ErrInsufficientData
	}
	if _, err := uuid.Parse(c.CourseUUID); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, c.CourseUUID)
	}
	if !model.ValidMode(c.Mode) {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	if !model.ValidReason(c.Reason) {
		return fmt.Errorf("%w: %q", ErrInvalidReason, c.Reason)
	}
	return nil
}

// Асинхронные действия

type Creators struct {
	client  entitlementclient.Client
	journal journal.Journal
	zaplog  *zap.Logger
	seq     atomic.Uint64
	modal   atomic.Uint64
	now     func() time.Time
}

func NewCreators(client entitlementclient.Client, journal journal.Journal, zaplog *zap.Logger) *Creators {
	return &Creators{
		client:  client,
		journal: journal,
		zaplog:  zaplog,
		now:     time.Now,
	}
}

type listResponse struct {
	Results []model.Entitlement `json:"results"`
}

// FetchEntitlements numbers the search when called, so a search submitted
// later always wins over an earlier one regardless of response order.
func (c *Creators) FetchEntitlements(email, username, courseKey string) store.Thunk {
	seq := c.seq.Add(1)

	return func(ctx context.Context, dispatch store.Dispatch) {
		dispatch(state.FetchEntitlementsRequest{
			Seq:       seq,
			Email:     email,
			Username:  username,
			CourseKey: courseKey,
		})

		if email == "" && username == "" {
			dispatch(state.FetchEntitlementsFailure{Seq: seq, Err: ErrInsufficientData})
			return
		}

		resp, err := c.client.RequestEntitlements(ctx, entitlementclient.Query{
			Email:     email,
			Username:  username,
			CourseKey: courseKey,
		})
		if err != nil {
			dispatch(state.FetchEntitlementsFailure{Seq: seq, Err: err})
			return
		}

		var list listResponse
		if err := decode(resp, &list); err != nil {
			dispatch(state.FetchEntitlementsFailure{Seq: seq, Err: err})
			return
		}
		dispatch(state.FetchEntitlementsSuccess{Seq: seq, Entitlements: list.Results})
	}
}

func (c *Creators) UpdateEntitlement(reissue Reissue) store.Thunk {
	return func(ctx context.Context, dispatch store.Dispatch) {
		dispatch(state.UpdateEntitlementRequest{
			Session:         reissue.Session,
			EntitlementUUID: reissue.EntitlementUUID,
			Reason:          reissue.Reason,
			Comments:        reissue.Comments,
		})

		if err := reissue.Validate(); err != nil {
			dispatch(state.UpdateEntitlementFailure{Session: reissue.Session, Err: err})
			return
		}

		resp, err := c.client.UpdateEntitlement(ctx, entitlementclient.UpdateRequest{
			EntitlementUUID: reissue.EntitlementUUID,
			Reason:          reissue.Reason,
			Comments:        reissue.Comments,
			User:            reissue.User,
		})
		if err != nil {
			dispatch(state.UpdateEntitlementFailure{Session: reissue.Session, Err: err})
			return
		}

		var entitlement model.Entitlement
		if err := decode(resp, &entitlement); err != nil {
			dispatch(state.UpdateEntitlementFailure{Session: reissue.Session, Err: err})
			return
		}

		c.record(ctx, model.SupportDetail{
			EntitlementUUID: entitlement.UUID,
			Action:          model.SupportActionReissue,
			Reason:          reissue.Reason,
			Comments:        reissue.Comments,
			SupportUser:     reissue.SupportUser,
		})
		dispatch(state.UpdateEntitlementSuccess{Session: reissue.Session, Entitlement: entitlement})
	}
}

func (c *Creators) CreateEntitlement(creation Creation) store.Thunk {
	return func(ctx context.Context, dispatch store.Dispatch) {
		dispatch(state.CreateEntitlementRequest{
			Session:    creation.Session,
			CourseUUID: creation.CourseUUID,
			User:       creation.User,
			Mode:       creation.Mode,
		})

		if err := creation.Validate(); err != nil {
			dispatch(state.CreateEntitlementFailure{Session: creation.Session, Err: err})
			return
		}

		resp, err := c.client.CreateEntitlement(ctx, entitlementclient.CreateRequest{
			CourseUUID: creation.CourseUUID,
			User:       creation.User,
			Mode:       creation.Mode,
			Reason:     creation.Reason,
			Comments:   creation.Comments,
		})
		if err != nil {
			dispatch(state.CreateEntitlementFailure{Session: creation.Session, Err: err})
			return
		}

		var entitlement model.Entitlement
		if err := decode(resp, &entitlement); err != nil {
			dispatch(state.CreateEntitlementFailure{Session: creation.Session, Err: err})
			return
		}

		c.record(ctx, model.SupportDetail{
			EntitlementUUID: entitlement.UUID,
			Action:          model.SupportActionCreate,
			Reason:          creation.Reason,
			Comments:        creation.Comments,
			SupportUser:     creation.SupportUser,
		})
		dispatch(state.CreateEntitlementSuccess{Session: creation.Session, Entitlement: entitlement})
	}
}

// Ошибка журнала не отменяет успешный ответ API
func (c *Creators) record(ctx context.Context, detail model.SupportDetail) {
	detail.Created = c.now().UTC()
	if err := c.journal.Record(ctx, detail); err != nil {
		metrics.JournalErrorsTotal.Inc()
		c.zaplog.Warn("support journal record failed",
			zap.String("entitlement", detail.EntitlementUUID),
			zap.String("action", detail.Action),
			zap.Error(err),
		)
	}
}

func decode(resp *entitlementclient.Response, v any) error {
	if err := resp.Err(); err != nil {
		return err
	}
	if len(resp.Body) == 0 {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decode entitlement response: %w", err)
	}
	return nil
}
