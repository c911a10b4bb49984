package services

import "skilldex/internal/storage"

// NormalizePage 应用分页契约：limit 超过上限时截断到上限，不强制下限
//（<=0 原样下推）；offset 为负时归零。默认值由 HTTP 层在参数缺失时填入。
func NormalizePage(limit, offset, maxLimit int) storage.Page {
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return storage.Page{Limit: limit, Offset: offset}
}
