package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sohada-a2it/A2itHRMServer/internal/leave"
	leaveerrors "github.com/sohada-a2it/A2itHRMServer/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	requestFn          func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn           func(ctx context.Context) ([]leave.LeaveResponse, error)
	getAllByEmployeeFn func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	getByIDFn          func(ctx context.Context, id string) (leave.LeaveResponse, error)
	approveFn          func(ctx context.Context, actorID, id string, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error)
	rejectFn           func(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error)
	reconcileFn        func(ctx context.Context, id string) (leave.LeaveResponse, error)
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeLeaveService) Request(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.requestFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeLeaveService) GetAllByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.getAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actorID, id string, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, actorID, id, req)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actorID, id, rejectionReason)
}
func (f *fakeLeaveService) Reconcile(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.reconcileFn(ctx, id)
}
func (f *fakeLeaveService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeLeaveService{
			requestFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					LeaveType:  req.LeaveType,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					TotalDays:  2,
					PayStatus:  "UNPAID",
					Status:     leave.StatusPending,
					CreatedBy:  aid,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","leave_type":"ANNUAL","start_date":"2026-03-10","end_date":"2026-03-11","reason":"family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Equal(t, 2, got.TotalDays)
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative conflict mapped", func(t *testing.T) {
		svc := &fakeLeaveService{
			requestFn: func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrDuplicateLeave
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","leave_type":"ANNUAL","start_date":"2026-03-10","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("success with pay status override", func(t *testing.T) {
		actorID := uuid.New().String()
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, aid, id string, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, leaveID, id)
				assert.NotNil(t, req.PayStatus)
				assert.Equal(t, "HALF_PAID", *req.PayStatus)
				return leave.LeaveResponse{
					ID:        id,
					PayStatus: *req.PayStatus,
					Status:    leave.StatusApproved,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", strings.NewReader(`{"pay_status":"HALF_PAID"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", actorID)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("empty body approves with stored pay status", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actorID, id string, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
				assert.Nil(t, req.PayStatus)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", uuid.New().String())

		h.Approve(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative invalid state mapped", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actorID, id string, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotPending
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Approve(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error) {
				assert.Equal(t, "insufficient coverage", rejectionReason)
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reject", strings.NewReader(`{"rejection_reason":"insufficient coverage"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", uuid.New().String())

		h.Reject(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative missing reason", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Reject(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	t.Run("filters by employee when query set", func(t *testing.T) {
		employeeID := uuid.New().String()
		svc := &fakeLeaveService{
			getAllByEmployeeFn: func(ctx context.Context, eid string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, eid)
				return []leave.LeaveResponse{{ID: uuid.New().String(), EmployeeID: eid}}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?employee_id="+employeeID, nil)

		h.GetAll(c)
		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
				return nil, errors.New("boom")
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)

		h.GetAll(c)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLeaveHandler_Reconcile(t *testing.T) {
	leaveID := uuid.New().String()
	svc := &fakeLeaveService{
		reconcileFn: func(ctx context.Context, id string) (leave.LeaveResponse, error) {
			assert.Equal(t, leaveID, id)
			return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reconcile", nil)
	c.Params = gin.Params{{Key: "id", Value: leaveID}}

	h.Reconcile(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
