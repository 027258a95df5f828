package search

import (
	"strings"

	"renthub/internal/models"
)

// Properties 按关键词和状态过滤房源列表
//
// 关键词对名称和地址做不区分大小写的子串匹配；状态为 "all" 时不过滤。
// 结果保持输入顺序，空关键词加 "all" 等于原样返回。
func Properties(list []models.Property, query, status string) []models.Property {
	query = strings.ToLower(query)

	result := make([]models.Property, 0, len(list))
	for _, p := range list {
		matchesQuery := query == "" ||
			strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Address), query)
		matchesStatus := status == "" || status == models.StatusAll || p.Status == status

		if matchesQuery && matchesStatus {
			result = append(result, p)
		}
	}
	return result
}

// Tenants 按关键词过滤租客列表
//
// 关键词对姓名和邮箱做不区分大小写的子串匹配，结果保持输入顺序。
func Tenants(list []models.Tenant, query string) []models.Tenant {
	query = strings.ToLower(query)

	result := make([]models.Tenant, 0, len(list))
	for _, t := range list {
		if query == "" ||
			strings.Contains(strings.ToLower(t.Name), query) ||
			strings.Contains(strings.ToLower(t.Email), query) {
			result = append(result, t)
		}
	}
	return result
}
