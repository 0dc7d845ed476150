package normalizer

import (
	"xhs_spider/internal/domain/note/model"
	"xhs_spider/internal/pkg/xhs"
)

// 平台默认展示规格的场景标识
const defaultImageScene = "WB_DFT"

// 编码偏好顺序，排前面的先扫
var codecPreference = []string{"h265", "h264", "av1", "h266"}

// CDN 模板
const (
	legacyVideoCDN = "https://sns-video-bd.xhscdn.com/"
	thumbnailCDN   = "https://sns-webpic-qc.xhscdn.com/"
)

// resolveImageList 逐张图选一个可用地址
// 优先 WB_DFT 规格，其次 info_list 第一个，最后 url_default；
// 什么都选不出来的条目直接丢弃，不报错
func resolveImageList(images []xhs.ImageItem) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		if u := resolveImage(img); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func resolveImage(img xhs.ImageItem) string {
	for _, info := range img.InfoList {
		if info.ImageScene == defaultImageScene && info.URL != "" {
			return info.URL
		}
	}
	for _, info := range img.InfoList {
		if info.URL != "" {
			return info.URL
		}
	}
	return img.URLDefault
}

// resolveVideo 填充视频相关字段
// 选流失败只是降级（video_addr 为空），不构成错误
func resolveVideo(rec *model.NoteRecord, card *xhs.NoteCard, images []string) {
	video := card.Video

	// 封面：优先已解析出的首图，否则用缩略图标识拼 CDN 地址
	if len(images) > 0 {
		rec.VideoCover = images[0]
	} else if video != nil && video.Image != nil && video.Image.ThumbnailFileID != "" {
		rec.VideoCover = thumbnailCDN + video.Image.ThumbnailFileID
	}

	if video == nil {
		return
	}

	if video.Capa != nil {
		rec.VideoDuration = video.Capa.Duration
	}

	// 按编码偏好顺序收集所有带可用地址的流
	var candidates []model.VideoStream
	if video.Media != nil && video.Media.Stream != nil {
		for _, codec := range codecPreference {
			for _, stream := range video.Media.Stream[codec] {
				if stream.MasterURL == "" {
					continue
				}
				candidates = append(candidates, model.VideoStream{
					URL:        stream.MasterURL,
					BackupURLs: stream.BackupURLs,
					Codec:      codec,
					Quality:    streamQuality(stream.QualityType),
					Width:      stream.Width,
					Height:     stream.Height,
					Size:       stream.Size,
					Duration:   stream.Duration,
					Bitrate:    stream.AvgBitrate,
				})
			}
		}
	}

	if len(candidates) > 0 {
		rec.VideoStreams = candidates
		rec.VideoAddr = pickBestStream(candidates).URL
		return
	}

	// 旧格式兜底：consumer 里的原始视频 key
	if video.Consumer != nil && video.Consumer.OriginVideoKey != "" {
		rec.VideoAddr = legacyVideoCDN + video.Consumer.OriginVideoKey
	}
}

// pickBestStream 取分辨率面积最大的流，面积相同保留先遇到的
func pickBestStream(candidates []model.VideoStream) model.VideoStream {
	best := candidates[0]
	bestArea := best.Width * best.Height
	for _, c := range candidates[1:] {
		if area := c.Width * c.Height; area > bestArea {
			best = c
			bestArea = area
		}
	}
	return best
}

func streamQuality(q string) string {
	if q == "" {
		return "Unknown"
	}
	return q
}
