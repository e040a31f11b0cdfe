package config

import (
	"errors"
	"time"
)

type QueueConfig struct {
	QueueUser              string        `mapstructure:"queue_user"`
	QueuePassword          string        `mapstructure:"queue_password"`
	Url                    string        `mapstructure:"url"`
	QueueProcessingTimeout time.Duration `mapstructure:"processing_timeout"`
	MsgMaxRetryAttempts    int32         `mapstructure:"msg_max_retry_attempts"`
	ReQueueDelayTime       time.Duration `mapstructure:"requeue_delay_time"`
	QueueType              string        `mapstructure:"queue_type"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return errors.New("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return errors.New("missing queue password")
	}

	if cfg.Url == "" {
		return errors.New("missing queue url")
	}

	if cfg.QueueProcessingTimeout <= 0 {
		return errors.New("invalid queue processing timeout")
	}

	if cfg.MsgMaxRetryAttempts <= 0 {
		return errors.New("invalid queue max retry attempts")
	}

	if cfg.ReQueueDelayTime <= 0 {
		return errors.New("invalid requeue delay time")
	}

	switch cfg.QueueType {
	case "", "classic", "quorum":
	default:
		return errors.New("queue type must be classic or quorum")
	}

	return nil
}
