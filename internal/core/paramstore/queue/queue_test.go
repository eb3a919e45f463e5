// Package queue 测试文件
package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultedge/v1/internal/core/paramstore/testutil"
)

// recordingWriter 记录落盘调用的测试写入器
type recordingWriter struct {
	mu        sync.Mutex
	batchGap  time.Duration
	written   []string
	failHash  string
	failErr   error
	inFlight  int32
	overlapped atomic.Bool
}

func (w *recordingWriter) write(ctx context.Context, task *Task) error {
	// 检测批次重叠：同一时刻最多一个write在途
	if atomic.AddInt32(&w.inFlight, 1) > 1 {
		w.overlapped.Store(true)
	}
	defer atomic.AddInt32(&w.inFlight, -1)

	if w.batchGap > 0 {
		time.Sleep(w.batchGap)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.failHash != "" && task.Hash == w.failHash {
		return w.failErr
	}
	w.written = append(w.written, task.Hash)
	return nil
}

func (w *recordingWriter) writtenHashes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.written))
	copy(out, w.written)
	return out
}

// TestNew_WithNilWrite_ReturnsError 测试write为nil时返回错误
func TestNew_WithNilWrite_ReturnsError(t *testing.T) {
	// Act
	q, err := New(nil, 4, time.Millisecond, testutil.NewMockLogger())

	// Assert
	assert.Error(t, err, "应该返回错误")
	assert.Nil(t, q, "队列实例应为nil")
}

// TestEnqueue_SingleTask_SettlesAfterFlush 测试单任务入队后随窗口刷盘
func TestEnqueue_SingleTask_SettlesAfterFlush(t *testing.T) {
	// Arrange
	w := &recordingWriter{}
	q, err := New(w.write, 8, 10*time.Millisecond, testutil.NewMockLogger())
	require.NoError(t, err)
	q.Start()
	defer func() { _ = q.Stop(context.Background()) }()

	// Act
	task := NewTask("strategies", "0xaaa", []byte(`{"a":1}`))
	require.NoError(t, q.Enqueue(task))

	// Assert：批次未满，等待窗口结束后任务应该结算
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, task.Wait(ctx), "任务应该成功落盘")
	assert.Equal(t, []string{"0xaaa"}, w.writtenHashes(), "任务应该被写入")
}

// TestEnqueue_BatchSizeReached_FlushesImmediately 测试批次满时立即刷盘
func TestEnqueue_BatchSizeReached_FlushesImmediately(t *testing.T) {
	// Arrange：等待窗口设得很长，只有批次满才会刷盘
	w := &recordingWriter{}
	q, err := New(w.write, 3, time.Hour, testutil.NewMockLogger())
	require.NoError(t, err)
	q.Start()
	defer func() { _ = q.Stop(context.Background()) }()

	// Act
	tasks := []*Task{
		NewTask("strategies", "0x111", []byte(`1`)),
		NewTask("strategies", "0x222", []byte(`2`)),
		NewTask("strategies", "0x333", []byte(`3`)),
	}
	for _, task := range tasks {
		require.NoError(t, q.Enqueue(task))
	}

	// Assert：三个任务全部在窗口结束之前结算
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, task := range tasks {
		require.NoError(t, task.Wait(ctx), "批次满时任务应该立即落盘")
	}
	assert.Len(t, w.writtenHashes(), 3)
}

// TestProcess_PerTaskSettlement 测试批次内任务按自身I/O结果独立结算
func TestProcess_PerTaskSettlement(t *testing.T) {
	// Arrange：第二个任务的落盘失败
	wantErr := errors.New("磁盘写入失败")
	w := &recordingWriter{failHash: "0xbad", failErr: wantErr}
	q, err := New(w.write, 3, time.Hour, testutil.NewMockLogger())
	require.NoError(t, err)
	q.Start()
	defer func() { _ = q.Stop(context.Background()) }()

	good1 := NewTask("strategies", "0x111", []byte(`1`))
	bad := NewTask("strategies", "0xbad", []byte(`2`))
	good2 := NewTask("strategies", "0x333", []byte(`3`))

	// Act
	require.NoError(t, q.Enqueue(good1))
	require.NoError(t, q.Enqueue(bad))
	require.NoError(t, q.Enqueue(good2))

	// Assert
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, good1.Wait(ctx), "成功任务不应该受失败邻居影响")
	assert.ErrorIs(t, bad.Wait(ctx), wantErr, "失败任务应该返回自身的I/O错误")
	assert.NoError(t, good2.Wait(ctx), "成功任务不应该受失败邻居影响")
}

// TestRun_NoOverlappingBatches 测试同一时刻只有一个批次在途
func TestRun_NoOverlappingBatches(t *testing.T) {
	// Arrange：写入放慢以放大潜在的重叠窗口
	w := &recordingWriter{batchGap: 2 * time.Millisecond}
	q, err := New(w.write, 2, time.Millisecond, testutil.NewMockLogger())
	require.NoError(t, err)
	q.Start()

	// Act
	var tasks []*Task
	for i := 0; i < 20; i++ {
		task := NewTask("strategies", "0xhash", []byte(`x`))
		require.NoError(t, q.Enqueue(task))
		tasks = append(tasks, task)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, task := range tasks {
		require.NoError(t, task.Wait(ctx))
	}
	require.NoError(t, q.Stop(context.Background()))

	// Assert
	assert.False(t, w.overlapped.Load(), "任何时刻都不应该有重叠的落盘调用")
	assert.Len(t, w.writtenHashes(), 20, "所有任务都应该被写入")
}

// TestStop_DrainsPendingTasks 测试关闭时排空在途任务
func TestStop_DrainsPendingTasks(t *testing.T) {
	// Arrange
	w := &recordingWriter{}
	q, err := New(w.write, 64, time.Hour, testutil.NewMockLogger())
	require.NoError(t, err)
	q.Start()

	var tasks []*Task
	for i := 0; i < 5; i++ {
		task := NewTask("pools", "0xhash", []byte(`x`))
		require.NoError(t, q.Enqueue(task))
		tasks = append(tasks, task)
	}

	// Act
	require.NoError(t, q.Stop(context.Background()))

	// Assert：已入队任务全部结算，之后的入队被拒绝
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, task := range tasks {
		assert.NoError(t, task.Wait(ctx), "关闭时在途任务应该完成落盘")
	}
	assert.ErrorIs(t, q.Enqueue(NewTask("pools", "0xnew", nil)), ErrQueueClosed, "关闭后入队应该被拒绝")
}
