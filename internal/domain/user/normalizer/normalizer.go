// Package normalizer 把用户主页载荷拍平成稳定的用户记录。
package normalizer

import (
	"errors"

	"xhs_spider/internal/domain/user/model"
	"xhs_spider/internal/pkg/xhs"
)

var (
	ErrMissingBasicInfo    = errors.New("user payload missing basic_info")
	ErrMissingInteractions = errors.New("user payload missing interaction counters")
)

// NormalizeUser 归一化用户主页信息
// interactions 固定顺序为 关注/粉丝/获赞与收藏，三个计数缺一不可
func NormalizeUser(userID string, data *xhs.UserInfoData) (*model.UserRecord, error) {
	if data == nil || data.BasicInfo == nil {
		return nil, ErrMissingBasicInfo
	}
	if len(data.Interactions) < 3 {
		return nil, ErrMissingInteractions
	}
	basic := data.BasicInfo

	record := &model.UserRecord{
		UserID:     userID,
		HomeURL:    xhs.UserHomeURL(userID),
		Nickname:   basic.Nickname,
		Avatar:     basic.Imageb,
		RedID:      basic.RedID,
		Gender:     genderLabel(basic.Gender),
		IPLocation: basic.IPLocation,
		Desc:       basic.Desc,
		Tags:       extractTagNames(data.Tags),
	}
	record.Follows = xhs.ParseCount(data.Interactions[0].Count)
	record.Fans = xhs.ParseCount(data.Interactions[1].Count)
	record.Interaction = xhs.ParseCount(data.Interactions[2].Count)
	return record, nil
}

func genderLabel(gender int) string {
	switch gender {
	case 0:
		return model.GenderMale
	case 1:
		return model.GenderFemale
	default:
		return model.GenderUnknown
	}
}

func extractTagNames(tags []xhs.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag.Name == "" {
			continue
		}
		names = append(names, tag.Name)
	}
	return names
}
