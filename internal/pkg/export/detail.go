package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	notemodel "xhs_spider/internal/domain/note/model"
	usermodel "xhs_spider/internal/domain/user/model"
)

// SaveNoteDetail 在笔记目录下写 detail.txt，逐行输出
func SaveNoteDetail(record notemodel.NoteRecord, dir string) error {
	var b strings.Builder
	writeLine(&b, "笔记id", record.NoteID)
	writeLine(&b, "笔记url", record.NoteURL)
	writeLine(&b, "笔记类型", record.NoteType)
	writeLine(&b, "用户id", record.UserID)
	writeLine(&b, "用户主页url", record.HomeURL)
	writeLine(&b, "昵称", record.Nickname)
	writeLine(&b, "头像url", record.Avatar)
	writeLine(&b, "标题", record.Title)
	writeLine(&b, "描述", record.Desc)
	writeLine(&b, "点赞数量", fmt.Sprintf("%d", record.LikedCount))
	writeLine(&b, "收藏数量", fmt.Sprintf("%d", record.CollectedCount))
	writeLine(&b, "评论数量", fmt.Sprintf("%d", record.CommentCount))
	writeLine(&b, "分享数量", fmt.Sprintf("%d", record.ShareCount))
	writeLine(&b, "视频封面url", record.VideoCover)
	writeLine(&b, "视频地址url", record.VideoAddr)
	writeLine(&b, "图片地址url列表", joinList(record.ImageList))
	writeLine(&b, "标签", joinList(record.Tags))
	writeLine(&b, "上传时间", record.UploadTime)
	writeLine(&b, "ip归属地", record.IPLocation)
	return os.WriteFile(filepath.Join(dir, "detail.txt"), []byte(b.String()), 0o644)
}

// SaveUserDetail 在用户目录下写 detail.txt
func SaveUserDetail(record usermodel.UserRecord, dir string) error {
	var b strings.Builder
	writeLine(&b, "用户id", record.UserID)
	writeLine(&b, "用户主页url", record.HomeURL)
	writeLine(&b, "用户名", record.Nickname)
	writeLine(&b, "头像url", record.Avatar)
	writeLine(&b, "小红书号", record.RedID)
	writeLine(&b, "性别", record.Gender)
	writeLine(&b, "ip地址", record.IPLocation)
	writeLine(&b, "介绍", record.Desc)
	writeLine(&b, "关注数量", fmt.Sprintf("%d", record.Follows))
	writeLine(&b, "粉丝数量", fmt.Sprintf("%d", record.Fans))
	writeLine(&b, "作品被赞和收藏数量", fmt.Sprintf("%d", record.Interaction))
	writeLine(&b, "标签", joinList(record.Tags))
	return os.WriteFile(filepath.Join(dir, "detail.txt"), []byte(b.String()), 0o644)
}

func writeLine(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
