package statushistoryhandler

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	candidatestore "job-application-backend/lib/candidate/store"
	statushistorystore "job-application-backend/lib/status-history/store"
	"job-application-backend/models"
	candidateapimodels "job-application-backend/models/api/candidate"
	dbmodels "job-application-backend/models/db"
)

type fakeCandidateStore struct {
	recs map[string]*dbmodels.Candidate
}

func (f *fakeCandidateStore) Create(rec dbmodels.Candidate) (string, error) {
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeCandidateStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return fmt.Errorf("запись не найдена")
	}
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.ApplicationStatus)
	}
	return nil
}

func (f *fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeCandidateStore) GetByIDForUpdate(id string) (*dbmodels.Candidate, error) {
	return f.GetByID(id)
}

func (f *fakeCandidateStore) GetByEmail(email string) (*dbmodels.Candidate, error) {
	for _, rec := range f.recs {
		if rec.Email == email {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCandidateStore) IsExistEmail(email string) (bool, error) {
	rec, _ := f.GetByEmail(email)
	return rec != nil, nil
}

func (f *fakeCandidateStore) IsExistPhone(phone string) (bool, error) {
	for _, rec := range f.recs {
		if rec.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCandidateStore) List(filter candidateapimodels.ListFilter) ([]dbmodels.Candidate, error) {
	return f.ListAll(filter)
}

func (f *fakeCandidateStore) ListAll(filter candidateapimodels.ListFilter) ([]dbmodels.Candidate, error) {
	list := make([]dbmodels.Candidate, 0, len(f.recs))
	for _, rec := range f.recs {
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeCandidateStore) ListCount(filter candidateapimodels.ListFilter) (int64, error) {
	return int64(len(f.recs)), nil
}

type fakeHistoryStore struct {
	recs []dbmodels.StatusHistory
	seq  int
}

func (f *fakeHistoryStore) Create(rec dbmodels.StatusHistory) (dbmodels.StatusHistory, error) {
	f.seq++
	rec.ID = fmt.Sprintf("history-%d", f.seq)
	rec.CreatedAt = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Minute)
	f.recs = append(f.recs, rec)
	return rec, nil
}

func (f *fakeHistoryStore) List(candidateID string) ([]dbmodels.StatusHistory, error) {
	list := []dbmodels.StatusHistory{}
	for _, rec := range f.recs {
		if rec.CandidateID == candidateID {
			list = append(list, rec)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (f *fakeHistoryStore) GetLatest(candidateID string) (*dbmodels.StatusHistory, error) {
	list, _ := f.List(candidateID)
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (f *fakeHistoryStore) Count(candidateID string) (int64, error) {
	list, _ := f.List(candidateID)
	return int64(len(list)), nil
}

type notifyCall struct {
	candidate dbmodels.Candidate
	history   dbmodels.StatusHistory
}

func newTestImpl(cs *fakeCandidateStore, hs *fakeHistoryStore, calls *[]notifyCall, delivered bool) impl {
	return impl{
		tx: func(fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		candidateStore: func(tx *gorm.DB) candidatestore.Provider {
			return cs
		},
		historyStore: func(tx *gorm.DB) statushistorystore.Provider {
			return hs
		},
		candidateReadStore: cs,
		historyReadStore:   hs,
		notify: func(candidate dbmodels.Candidate, history dbmodels.StatusHistory) bool {
			*calls = append(*calls, notifyCall{candidate: candidate, history: history})
			return delivered
		},
	}
}

func seedCandidate(status models.ApplicationStatus) (*fakeCandidateStore, *fakeHistoryStore) {
	cs := &fakeCandidateStore{recs: map[string]*dbmodels.Candidate{}}
	cs.recs["cand-1"] = &dbmodels.Candidate{
		BaseModel: dbmodels.BaseModel{ID: "cand-1"},
		FullName:  "Мария Смирнова",
		Email:     "maria@example.org",
		Status:    status,
	}
	hs := &fakeHistoryStore{}
	hs.Create(dbmodels.StatusHistory{
		CandidateID: "cand-1",
		NewStatus:   models.StatusSubmitted,
		Comments:    models.InitialSubmissionComment,
		ChangedBy:   models.ActorSystem,
	})
	return cs, hs
}

func TestChangeStatus(t *testing.T) {
	t.Run(`successful transition updates candidate and records history`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		view, err := handler.ChangeStatus("cand-1", candidateapimodels.StatusUpdateRequest{
			Status:    string(models.StatusUnderReview),
			Comments:  "Looks promising",
			ChangedBy: "hr_manager",
		})
		require.Nil(t, err)
		require.Equal(t, "cand-1", view.CandidateID)
		require.Equal(t, string(models.StatusSubmitted), view.PreviousStatus)
		require.Equal(t, string(models.StatusUnderReview), view.NewStatus)
		require.False(t, view.UpdatedAt.IsZero())

		require.Equal(t, models.StatusUnderReview, cs.recs["cand-1"].Status)
		count, _ := hs.Count("cand-1")
		require.Equal(t, int64(2), count)
		latest, _ := hs.GetLatest("cand-1")
		require.NotNil(t, latest.PreviousStatus)
		require.Equal(t, models.StatusSubmitted, *latest.PreviousStatus)
		require.Equal(t, models.StatusUnderReview, latest.NewStatus)
		require.Equal(t, "Looks promising", latest.Comments)
		require.Equal(t, "hr_manager", latest.ChangedBy)
	})

	t.Run(`notification receives committed state`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		_, err := handler.ChangeStatus("cand-1", candidateapimodels.StatusUpdateRequest{
			Status: string(models.StatusRejected),
		})
		require.Nil(t, err)
		require.Len(t, calls, 1)
		require.Equal(t, "cand-1", calls[0].candidate.ID)
		require.Equal(t, models.StatusRejected, calls[0].candidate.Status)
		require.Equal(t, models.StatusRejected, calls[0].history.NewStatus)
	})

	t.Run(`failed delivery does not undo transition`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, false)

		view, err := handler.ChangeStatus("cand-1", candidateapimodels.StatusUpdateRequest{
			Status: string(models.StatusAccepted),
		})
		require.Nil(t, err)
		require.Equal(t, string(models.StatusAccepted), view.NewStatus)
		require.Equal(t, models.StatusAccepted, cs.recs["cand-1"].Status)
		count, _ := hs.Count("cand-1")
		require.Equal(t, int64(2), count)
	})

	t.Run(`transition to current status rejected without history`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusUnderReview)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		_, err := handler.ChangeStatus("cand-1", candidateapimodels.StatusUpdateRequest{
			Status: string(models.StatusUnderReview),
		})
		require.NotNil(t, err)
		vErr := &models.ValidationError{}
		require.ErrorAs(t, err, &vErr)
		require.Contains(t, vErr.Fields, "status")

		count, _ := hs.Count("cand-1")
		require.Equal(t, int64(1), count)
		require.Len(t, calls, 0)
		require.Equal(t, models.StatusUnderReview, cs.recs["cand-1"].Status)
	})

	t.Run(`unknown status rejected`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		_, err := handler.ChangeStatus("cand-1", candidateapimodels.StatusUpdateRequest{
			Status: "PROMOTED",
		})
		require.NotNil(t, err)
		vErr := &models.ValidationError{}
		require.ErrorAs(t, err, &vErr)
		require.Contains(t, vErr.Fields, "status")
		require.Len(t, calls, 0)
	})

	t.Run(`unknown candidate`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		_, err := handler.ChangeStatus("cand-404", candidateapimodels.StatusUpdateRequest{
			Status: string(models.StatusUnderReview),
		})
		require.ErrorIs(t, err, models.ErrNotFound)
		require.Len(t, calls, 0)
	})

	t.Run(`empty changed_by defaults to admin`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		_, err := handler.ChangeStatus("cand-1", candidateapimodels.StatusUpdateRequest{
			Status: string(models.StatusInterviewScheduled),
		})
		require.Nil(t, err)
		latest, _ := hs.GetLatest("cand-1")
		require.Equal(t, models.ActorAdmin, latest.ChangedBy)
	})

	t.Run(`sequence of transitions keeps full chain`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		sequence := []models.ApplicationStatus{
			models.StatusUnderReview,
			models.StatusInterviewScheduled,
			models.StatusAccepted,
		}
		for _, status := range sequence {
			_, err := handler.ChangeStatus("cand-1", candidateapimodels.StatusUpdateRequest{Status: string(status)})
			require.Nil(t, err)
		}

		count, _ := hs.Count("cand-1")
		require.Equal(t, int64(4), count)

		list, _ := hs.List("cand-1")
		// новые первыми, цепочка previous -> new непрерывна
		require.Equal(t, models.StatusAccepted, list[0].NewStatus)
		for idx := 0; idx < len(list)-1; idx++ {
			require.NotNil(t, list[idx].PreviousStatus)
			require.Equal(t, list[idx+1].NewStatus, *list[idx].PreviousStatus)
		}
		require.Nil(t, list[len(list)-1].PreviousStatus)
	})
}

func TestHistoryList(t *testing.T) {
	t.Run(`history view contains candidate and ordered records`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		_, err := handler.ChangeStatus("cand-1", candidateapimodels.StatusUpdateRequest{
			Status:   string(models.StatusUnderReview),
			Comments: "Resume shortlisted",
		})
		require.Nil(t, err)

		view, err := handler.List("cand-1")
		require.Nil(t, err)
		require.Equal(t, "cand-1", view.CandidateID)
		require.Equal(t, "Мария Смирнова", view.CandidateName)
		require.Equal(t, string(models.StatusUnderReview), view.CurrentStatus)
		require.Len(t, view.StatusHistory, 2)
		require.Equal(t, string(models.StatusUnderReview), view.StatusHistory[0].NewStatus)
		require.Equal(t, "Resume shortlisted", view.StatusHistory[0].Comments)
		require.Nil(t, view.StatusHistory[1].PreviousStatus)
		require.Equal(t, models.ActorSystem, view.StatusHistory[1].ChangedBy)
	})

	t.Run(`unknown candidate`, func(t *testing.T) {
		cs, hs := seedCandidate(models.StatusSubmitted)
		calls := []notifyCall{}
		handler := newTestImpl(cs, hs, &calls, true)

		_, err := handler.List("cand-404")
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}
