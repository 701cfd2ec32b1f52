package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/infohazards/indranet-explorer/model"
	"github.com/infohazards/indranet-explorer/store"
)

const (
	CmdSaveData = "save_data"
	CmdLoadData = "load_data"
)

type saveDataArgs struct {
	Data *string `json:"data"`
}

// NewStorageBridge returns a Bridge serving save_data and load_data from st.
func NewStorageBridge(st store.Store, log logrus.FieldLogger) *Bridge {
	b := New(log)
	b.Register(CmdSaveData, saveData(st))
	b.Register(CmdLoadData, loadData(st))
	return b
}

// saveData persists args.data. Failing to store it is a storage fault.
func saveData(st store.Store) Handler {
	return func(_ context.Context, raw json.RawMessage) (any, error) {
		var args saveDataArgs
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, model.NewExitError(model.UsageError, fmt.Errorf("%s: invalid args: %w", CmdSaveData, err))
			}
		}
		if args.Data == nil {
			return nil, model.NewExitError(model.UsageError, errors.New(CmdSaveData+": missing string argument \"data\""))
		}
		if err := st.Save(*args.Data); err != nil {
			return nil, model.NewStorageFault(err)
		}
		return nil, nil
	}
}

// loadData returns the persisted payload. It cannot fail.
func loadData(st store.Store) Handler {
	return func(context.Context, json.RawMessage) (any, error) {
		return st.Load(), nil
	}
}
