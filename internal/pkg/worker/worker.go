package worker

import (
	"log"
	"time"

	"deal_market/pkg/metrics"
)

// Task 异步任务：门店统计自增、推送下发等非关键路径写操作
type Task struct {
	Type  string       // 任务类型，用于日志和指标
	Run   func() error // 任务执行体
	Retry int          // 已重试次数
}

// Pool 带重试队列的任务池
type Pool struct {
	TaskQueue  chan Task
	RetryQueue chan Task
	WorkerNum  int
	MaxRetry   int
}

// NewPool 创建任务池
func NewPool(workerNum int, bufferSize int) *Pool {
	return &Pool{
		TaskQueue:  make(chan Task, bufferSize),
		RetryQueue: make(chan Task, bufferSize/2),
		WorkerNum:  workerNum,
		MaxRetry:   3, // 最多重试3次
	}
}

// Start 启动 worker 协程
func (p *Pool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	// 启动重试处理协程
	go p.retryWorker()
	log.Printf("Worker pool started with %d workers", p.WorkerNum)
}

func (p *Pool) worker(id int) {
	for task := range p.TaskQueue {
		metrics.Default.WorkerQueueLength.Set(float64(len(p.TaskQueue)))

		if err := task.Run(); err != nil {
			metrics.Default.WorkerTasksTotal.WithLabelValues(task.Type, "error").Inc()
			log.Printf("[Worker %d] Failed to process %s task: %v", id, task.Type, err)

			// 如果未达到最大重试次数，加入重试队列
			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
					log.Printf("[Worker %d] Task added to retry queue (attempt %d/%d)",
						id, task.Retry, p.MaxRetry)
				default:
					log.Printf("[Worker %d] Retry queue full, %s task dropped", id, task.Type)
					p.logFailedTask(task, err)
				}
			} else {
				log.Printf("[Worker %d] Task exceeded max retries, dropped: %s", id, task.Type)
				p.logFailedTask(task, err)
			}
			continue
		}
		metrics.Default.WorkerTasksTotal.WithLabelValues(task.Type, "ok").Inc()
	}
}

func (p *Pool) retryWorker() {
	for task := range p.RetryQueue {
		// 延迟重试，避免立即重试
		time.Sleep(time.Duration(task.Retry) * time.Second)

		// 重新加入主队列
		select {
		case p.TaskQueue <- task:
			log.Printf("[RetryWorker] Task re-queued (attempt %d/%d)", task.Retry, p.MaxRetry)
		default:
			log.Printf("[RetryWorker] Main queue full, %s task dropped", task.Type)
			p.logFailedTask(task, nil)
		}
	}
}

func (p *Pool) logFailedTask(task Task, err error) {
	// 统计自增、推送都是尽力而为的写操作，最终失败仅记录日志
	log.Printf("[DeadLetter] Task failed permanently: type=%s, error=%v", task.Type, err)
}

// Submit 任务入队，队列满时丢弃
func (p *Pool) Submit(taskType string, run func() error) {
	task := Task{Type: taskType, Run: run}
	select {
	case p.TaskQueue <- task:
		metrics.Default.WorkerQueueLength.Set(float64(len(p.TaskQueue)))
	default:
		log.Printf("Worker pool queue full, dropping %s task", taskType)
		p.logFailedTask(task, nil)
	}
}
