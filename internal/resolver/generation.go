package resolver

import "resumelab/internal/resume"

// ApplyGeneration 在接受一批新的生成建议前清理草稿：
// 允许生成的区块（头部/经历/项目/技能）的用户覆盖被清空，
// 新建议才不会被陈旧草稿遮蔽；education/certifications 永不重新生成，
// 其草稿覆盖原样保留。返回归一化后的草稿，可能为 nil。
func ApplyGeneration(draft *resume.Draft) *resume.Draft {
	if draft == nil {
		return nil
	}
	cleared := *draft
	cleared.Header = nil
	cleared.Experiences = nil
	cleared.Projects = nil
	cleared.Skills = nil
	return cleared.Normalized()
}

// AcceptCompleted 实现“只接受最近一次完成的响应”的排序检查：
// 迟到的旧响应（序号早于最近一次发起的请求）被丢弃，不盲目采纳。
// 返回应当生效的建议以及本次响应是否被接受。
func AcceptCompleted(current *resume.Generated, completed resume.Generated, latestIssuedSeq int64) (*resume.Generated, bool) {
	if completed.Seq < latestIssuedSeq {
		return current, false
	}
	if current != nil && completed.Seq < current.Seq {
		return current, false
	}
	return &completed, true
}
