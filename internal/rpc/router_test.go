package rpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/model/modeltest"
	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
)

func dispatch(t *testing.T, rt *Router, mm *model.ModelManager, id, method, params string) (*Response, error) {
	t.Helper()
	c, err := shared.NewCtx(1000)
	require.NoError(t, err)
	req := Request{Method: method}
	if id != "" {
		req.ID = json.RawMessage(id)
	}
	if params != "" {
		req.Params = json.RawMessage(params)
	}
	return rt.Dispatch(context.Background(), c, mm, req)
}

func decodeTask(t *testing.T, resp *Response) model.Task {
	t.Helper()
	var task model.Task
	require.NoError(t, json.Unmarshal(resp.Result, &task))
	return task
}

func TestRouterMethods(t *testing.T) {
	assert.Equal(t, []string{"create_task", "delete_task", "list_task", "update_task"}, New().Methods())
}

func TestRouterDuplicatePanics(t *testing.T) {
	list := func(context.Context, Deps) ([]model.Task, error) { return nil, nil }
	assert.PanicsWithValue(t, `rpc: duplicate method "list_task"`, func() {
		newRouter(withoutParams("list_task", list), withoutParams("list_task", list))
	})
}

func TestDispatchCreateTask(t *testing.T) {
	mm, _ := modeltest.NewManager()

	resp, err := dispatch(t, New(), mm, `"req-1"`, "create_task", `{"data":{"title":"task AAA"}}`)
	require.NoError(t, err)

	assert.JSONEq(t, `"req-1"`, string(resp.ID))
	task := decodeTask(t, resp)
	assert.Equal(t, "task AAA", task.Title)
	assert.Equal(t, int64(1000), task.Cid)
	assert.NotZero(t, task.ID)
}

func TestDispatchEchoesNullID(t *testing.T) {
	mm, _ := modeltest.NewManager()

	resp, err := dispatch(t, New(), mm, "", "list_task", "")
	require.NoError(t, err)
	assert.Equal(t, "null", string(resp.ID))
	assert.Equal(t, "[]", string(resp.Result))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null,"result":[]}`, string(raw))
}

func TestDispatchRequestErrors(t *testing.T) {
	mm, _ := modeltest.NewManager()
	rt := New()

	tests := []struct {
		name   string
		method string
		params string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unknown method",
			method: "drop_task",
			check: func(t *testing.T, err error) {
				var e *MethodUnknownError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "drop_task", e.Method)
			},
		},
		{
			name:   "missing params",
			method: "create_task",
			check: func(t *testing.T, err error) {
				var e *MissingParamsError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "create_task", e.Method)
			},
		},
		{
			name:   "null params",
			method: "delete_task",
			params: "null",
			check: func(t *testing.T, err error) {
				var e *MissingParamsError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "wrong shape",
			method: "create_task",
			params: `{"data":5}`,
			check: func(t *testing.T, err error) {
				var e *FailJSONParamsError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "create_task", e.RPCMethod())
			},
		},
		{
			name:   "missing title",
			method: "create_task",
			params: `{"data":{}}`,
			check: func(t *testing.T, err error) {
				var e *FailJSONParamsError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "missing id",
			method: "delete_task",
			params: `{}`,
			check: func(t *testing.T, err error) {
				var e *FailJSONParamsError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "zero id",
			method: "update_task",
			params: `{"id":0,"data":{"done":true}}`,
			check: func(t *testing.T, err error) {
				var e *FailJSONParamsError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "update_task", e.RPCMethod())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := dispatch(t, rt, mm, `1`, tt.method, tt.params)
			assert.Nil(t, resp)
			var reqErr RequestError
			require.ErrorAs(t, err, &reqErr)
			tt.check(t, err)
		})
	}
}

func TestDispatchIgnoresParamsOfNoParamsMethod(t *testing.T) {
	mm, _ := modeltest.NewManager()
	_, err := dispatch(t, New(), mm, `1`, "list_task", `{"anything":true}`)
	assert.NoError(t, err)
}

func TestDispatchUpdateTask(t *testing.T) {
	mm, _ := modeltest.NewManager()
	rt := New()
	created, err := dispatch(t, rt, mm, `1`, "create_task", `{"data":{"title":"before"}}`)
	require.NoError(t, err)
	id := decodeTask(t, created).ID

	resp, err := dispatch(t, rt, mm, `2`, "update_task", `{"id":`+jsonInt(id)+`,"data":{"done":true}}`)
	require.NoError(t, err)
	task := decodeTask(t, resp)
	assert.True(t, task.Done)
	assert.Equal(t, "before", task.Title)
}

// Create two tasks, delete one, then deleting it again reports the entity.
func TestDispatchTaskLifecycle(t *testing.T) {
	mm, _ := modeltest.NewManager()
	rt := New()

	var ids []int64
	for _, title := range []string{"task AAA", "task BBB"} {
		resp, err := dispatch(t, rt, mm, `1`, "create_task", `{"data":{"title":"`+title+`"}}`)
		require.NoError(t, err)
		ids = append(ids, decodeTask(t, resp).ID)
	}

	resp, err := dispatch(t, rt, mm, `2`, "list_task", "")
	require.NoError(t, err)
	var tasks []model.Task
	require.NoError(t, json.Unmarshal(resp.Result, &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "task AAA", tasks[0].Title)

	resp, err = dispatch(t, rt, mm, `3`, "delete_task", `{"id":`+jsonInt(ids[0])+`}`)
	require.NoError(t, err)
	assert.Equal(t, "task AAA", decodeTask(t, resp).Title)

	_, err = dispatch(t, rt, mm, `4`, "delete_task", `{"id":`+jsonInt(ids[0])+`}`)
	var notFound *model.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, &model.EntityNotFoundError{Entity: "task", ID: ids[0]}, notFound)

	resp, err = dispatch(t, rt, mm, `5`, "list_task", "")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(resp.Result, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "task BBB", tasks[0].Title)
}

func jsonInt(n int64) string {
	raw, _ := json.Marshal(n)
	return string(raw)
}
