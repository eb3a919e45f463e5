// Package queue 实现参数存储的异步批量写入队列（write-behind）
//
// 🎯 **核心职责**：
// - 接收写入任务并立即返回，落盘异步完成
// - 批量刷盘：累计到批次大小立即刷盘，否则在等待窗口结束后刷盘
// - 串行批次：单消费者goroutine保证同一时刻只处理一个批次
//
// 💡 **设计特点**：
// - 单消费者：通过channel+单goroutine显式表达"同一时刻只有一个批次在途"
// - 按任务结算：每个任务的结果由其自身的I/O结果决定，批次内互不影响
// - 无取消机制：任务一旦入队，要么随批次完成，要么随自身I/O失败
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
)

// ErrQueueClosed 队列已关闭，不再接受新任务
var ErrQueueClosed = errors.New("写入队列已关闭")

// Task 写入任务
// 一个任务对应 (collection, hash) 下的一份规范化字节
type Task struct {
	Collection string
	Hash       string
	Data       []byte

	result chan error
}

// NewTask 创建写入任务
func NewTask(collection, hash string, data []byte) *Task {
	return &Task{
		Collection: collection,
		Hash:       hash,
		Data:       data,
		result:     make(chan error, 1),
	}
}

// Wait 等待任务落盘完成
// 返回该任务自身的I/O结果；ctx取消时提前返回，但任务仍会随批次完成
func (t *Task) Wait(ctx context.Context) error {
	select {
	case err := <-t.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// settle 结算任务结果（只结算一次，result带1缓冲不阻塞消费者）
func (t *Task) settle(err error) {
	t.result <- err
}

// WriteFunc 执行单个任务的落盘
// 由参数存储服务提供：主存储原子写入+备份存储直接写入
type WriteFunc func(ctx context.Context, task *Task) error

// Prometheus 指标：观测写入队列运行情况
var (
	queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vaultedge_writequeue_depth",
		Help: "Number of tasks currently pending in the write queue.",
	})
	queueBatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vaultedge_writequeue_batches_total",
		Help: "Total number of flushed write batches.",
	})
	queueTaskErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vaultedge_writequeue_task_errors_total",
		Help: "Total number of write tasks that failed.",
	})
)

func init() {
	prometheus.MustRegister(queueDepth, queueBatchesTotal, queueTaskErrors)
}

// Queue 异步批量写入队列
type Queue struct {
	logger     log.Logger
	write      WriteFunc
	batchSize  int
	batchDelay time.Duration

	tasks chan *Task
	done  chan struct{}

	mu      sync.RWMutex
	started bool
	closed  bool
}

// New 创建写入队列
//
// 参数：
//   - write: 单任务落盘函数（必需）
//   - batchSize: 批次大小，达到后立即刷盘
//   - batchDelay: 等待窗口，自批次首个任务起计时
//   - logger: 日志服务（必需）
func New(write WriteFunc, batchSize int, batchDelay time.Duration, logger log.Logger) (*Queue, error) {
	if write == nil {
		return nil, errors.New("write 不能为空")
	}
	if logger == nil {
		return nil, errors.New("logger 不能为空")
	}
	if batchSize < 1 {
		batchSize = 1
	}

	return &Queue{
		logger:     logger,
		write:      write,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		tasks:      make(chan *Task, 1024),
		done:       make(chan struct{}),
	}, nil
}

// Start 启动消费者goroutine
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started || q.closed {
		return
	}
	q.started = true

	go q.run()
}

// Enqueue 提交写入任务
// 立即返回；调用方可通过task.Wait等待落盘结果
func (q *Queue) Enqueue(task *Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.tasks <- task
	queueDepth.Inc()
	return nil
}

// Stop 关闭队列并等待在途任务落盘完成
// 关闭后Enqueue返回ErrQueueClosed；隐含的排空保证：已入队任务全部结算
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	started := q.started
	close(q.tasks)
	q.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run 消费者主循环：取首个任务 → 聚批 → 串行刷盘
func (q *Queue) run() {
	defer close(q.done)

	for task := range q.tasks {
		batch := q.collect(task)
		q.process(batch)
	}
}

// collect 自首个任务起聚批
// 累计到batchSize立即返回，否则等待窗口结束后返回当前批次
func (q *Queue) collect(first *Task) []*Task {
	batch := []*Task{first}
	if q.batchSize <= 1 {
		return batch
	}

	timer := time.NewTimer(q.batchDelay)
	defer timer.Stop()

	for len(batch) < q.batchSize {
		select {
		case task, ok := <-q.tasks:
			if !ok {
				return batch
			}
			batch = append(batch, task)
		case <-timer.C:
			return batch
		}
	}
	return batch
}

// process 刷盘一个批次
// 每个任务按自身I/O结果独立结算，不受批次内其他任务影响
func (q *Queue) process(batch []*Task) {
	queueBatchesTotal.Inc()

	for _, task := range batch {
		err := q.write(context.Background(), task)
		if err != nil {
			queueTaskErrors.Inc()
			q.logger.Errorf("写入任务落盘失败: collection=%s hash=%s err=%v", task.Collection, task.Hash, err)
		}
		task.settle(err)
		queueDepth.Dec()
	}

	q.logger.Debugf("批次刷盘完成: %d个任务", len(batch))
}
