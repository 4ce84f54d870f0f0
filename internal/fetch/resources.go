package fetch

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// 浏览器进程的预估内存开销,低于该可用量时拒绝启动
const browserMemoryRequirement = 512 * 1024 * 1024

// CPU负载高于该百分比时拒绝启动浏览器
const cpuLoadLimit = 90.0

// checkLaunchResources 浏览器启动前的系统资源检查
//
// 内存不足或CPU过载时返回错误,让调用方退回静态获取结果
func checkLaunchResources() error {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		// 读不到系统内存时不阻止启动
		utils.Warnf("获取系统内存失败,跳过资源检查: %v", err)
		return nil
	}

	if vmStat.Available < browserMemoryRequirement {
		return fmt.Errorf("系统可用内存不足 (%.0f MB < %.0f MB),拒绝启动浏览器",
			float64(vmStat.Available)/(1024*1024), float64(browserMemoryRequirement)/(1024*1024))
	}

	percentages, err := cpu.Percent(200*time.Millisecond, false)
	if err == nil && len(percentages) > 0 && percentages[0] > cpuLoadLimit {
		return fmt.Errorf("CPU负载过高 (%.1f%% > %.1f%%),拒绝启动浏览器", percentages[0], cpuLoadLimit)
	}

	utils.Debugf("资源检查通过: 可用内存 %.2f GB", float64(vmStat.Available)/(1024*1024*1024))
	return nil
}
