// Package database - Index cho luồng duyệt bài và phát hành (compound, unique) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"github.com/xiaofeiTM233/FlowHub/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateReviewIndexes tạo các index cho collections của luồng duyệt bài.
// Gọi một lần lúc khởi động server, sau khi có kết nối MongoDB.
func CreateReviewIndexes(ctx context.Context, db *mongo.Database) error {
	// review_drafts: (type, timestamp) — queue hàng chờ duyệt theo thời gian gửi
	drafts := db.Collection(global.MongoDB_ColNames.ReviewDrafts)
	if _, err := drafts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "type", Value: 1},
			{Key: "timestamp", Value: 1},
		},
		Options: options.Index().SetName("draft_type_timestamp"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// review_drafts: (timestamp) — tra cứu bài theo mã timestamp từ client gửi bài
	if _, err := drafts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "timestamp", Value: 1},
		},
		Options: options.Index().SetName("draft_timestamp"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// review_drafts: (sender.userid) — tra cứu lịch sử gửi bài của một người
	if _, err := drafts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "sender.userid", Value: 1},
		},
		Options: options.Index().SetName("draft_sender").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// posts: (num) unique sparse — số thứ tự bài đã phát hành
	posts := db.Collection(global.MongoDB_ColNames.Posts)
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "num", Value: 1},
		},
		Options: options.Index().SetName("post_num").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// posts: (type, timestamp) — trang quản lý bài đã phát hành
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "type", Value: 1},
			{Key: "timestamp", Value: 1},
		},
		Options: options.Index().SetName("post_type_timestamp"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// accounts: (aid) unique — aid là khóa tra cứu tài khoản của toàn hệ thống
	accounts := db.Collection(global.MongoDB_ColNames.Accounts)
	if _, err := accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "aid", Value: 1},
		},
		Options: options.Index().SetName("account_aid").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// accounts: (platform, uid) unique — mỗi tài khoản nền tảng chỉ khai báo một lần
	if _, err := accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "platform", Value: 1},
			{Key: "uid", Value: 1},
		},
		Options: options.Index().SetName("account_platform_uid").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
