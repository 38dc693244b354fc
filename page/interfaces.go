//go:generate mockgen -package=page -destination=mock.go -source=interfaces.go

package page

import (
	"context"
	"errors"
)

// Notification 是確認出價或報價後要顯示給使用者的短暫通知
type Notification struct {
	Title   string `json:"title" msgpack:"title"`
	Message string `json:"message" msgpack:"message"`
}

// INotifier 定義了通知的發送介面，頁面本身不負責通知的顯示與生命週期
type INotifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// NotifierFunc 讓一般函數可以作為 INotifier 使用
type NotifierFunc func(ctx context.Context, notification Notification) error

func (f NotifierFunc) Notify(ctx context.Context, notification Notification) error {
	return f(ctx, notification)
}

// Notifiers 將同一則通知依序送給所有 notifier，並合併錯誤
type Notifiers []INotifier

func (ns Notifiers) Notify(ctx context.Context, notification Notification) error {
	var errs []error
	for _, n := range ns {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var discardNotifier = NotifierFunc(func(context.Context, Notification) error { return nil })
