package common

import (
	"context"
	"fmt"
	"math"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

var taskGoPool gopool.Pool

func init() {
	taskGoPool = gopool.NewPool("gopool.TaskPool", math.MaxInt32, gopool.NewConfig())
	taskGoPool.SetPanicHandler(func(ctx context.Context, i interface{}) {
		logger.SysError(fmt.Sprintf("panic in gopool.TaskPool: %v", i))
	})
}

// TaskCtxGo runs f on the shared pool, used for fire-and-forget work such as
// persisting task records and mirroring assets.
func TaskCtxGo(ctx context.Context, f func()) {
	taskGoPool.CtxGo(ctx, f)
}
